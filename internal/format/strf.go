package format

import "github.com/joshuapare/avikit/internal/buf"

// BitmapInfoHeader is the strf payload of a vids stream. Palettes and
// codec-specific data that follow the 40-byte header are kept in Extra.
type BitmapInfoHeader struct {
	Size          uint32
	Width         int32
	Height        int32
	Planes        uint16
	BitCount      uint16
	Compression   FourCC
	SizeImage     uint32
	XPelsPerMeter int32
	YPelsPerMeter int32
	ClrUsed       uint32
	ClrImportant  uint32
	Extra         []byte
}

// DecodeBitmapInfoHeader decodes a strf payload of a video stream.
func DecodeBitmapInfoHeader(b []byte) (*BitmapInfoHeader, error) {
	if err := need("strf bitmapinfo", b, BitmapInfoHeaderSize); err != nil {
		return nil, err
	}
	r := fieldReader{b: b}
	h := &BitmapInfoHeader{
		Size:          r.u32(),
		Width:         r.i32(),
		Height:        r.i32(),
		Planes:        r.u16(),
		BitCount:      r.u16(),
		Compression:   r.fourCC(),
		SizeImage:     r.u32(),
		XPelsPerMeter: r.i32(),
		YPelsPerMeter: r.i32(),
		ClrUsed:       r.u32(),
		ClrImportant:  r.u32(),
	}
	h.Extra = r.rest()
	return h, nil
}

func (h *BitmapInfoHeader) Kind() Kind { return KindBitmapInfoHeader }
func (h *BitmapInfoHeader) Len() int   { return BitmapInfoHeaderSize + len(h.Extra) }

func (h *BitmapInfoHeader) AppendTo(b []byte) []byte {
	b = buf.AppendU32LE(b, h.Size)
	b = buf.AppendU32LE(b, uint32(h.Width))
	b = buf.AppendU32LE(b, uint32(h.Height))
	b = buf.AppendU16LE(b, h.Planes)
	b = buf.AppendU16LE(b, h.BitCount)
	b = append(b, h.Compression[:]...)
	b = buf.AppendU32LE(b, h.SizeImage)
	b = buf.AppendU32LE(b, uint32(h.XPelsPerMeter))
	b = buf.AppendU32LE(b, uint32(h.YPelsPerMeter))
	b = buf.AppendU32LE(b, h.ClrUsed)
	b = buf.AppendU32LE(b, h.ClrImportant)
	return append(b, h.Extra...)
}

// WaveFormat is the 16-byte PCMWAVEFORMAT prefix shared by every audio layout.
type WaveFormat struct {
	FormatTag      uint16
	Channels       uint16
	SamplesPerSec  uint32
	AvgBytesPerSec uint32
	BlockAlign     uint16
	BitsPerSample  uint16
}

func (w *WaveFormat) read(r *fieldReader) {
	w.FormatTag = r.u16()
	w.Channels = r.u16()
	w.SamplesPerSec = r.u32()
	w.AvgBytesPerSec = r.u32()
	w.BlockAlign = r.u16()
	w.BitsPerSample = r.u16()
}

func (w WaveFormat) appendTo(b []byte) []byte {
	b = buf.AppendU16LE(b, w.FormatTag)
	b = buf.AppendU16LE(b, w.Channels)
	b = buf.AppendU32LE(b, w.SamplesPerSec)
	b = buf.AppendU32LE(b, w.AvgBytesPerSec)
	b = buf.AppendU16LE(b, w.BlockAlign)
	return buf.AppendU16LE(b, w.BitsPerSample)
}

// WaveFormatEx is WAVEFORMATEX: WaveFormat plus cbSize.
type WaveFormatEx struct {
	WaveFormat
	Size uint16
}

func (w *WaveFormatEx) read(r *fieldReader) {
	w.WaveFormat.read(r)
	w.Size = r.u16()
}

func (w WaveFormatEx) appendTo(b []byte) []byte {
	b = w.WaveFormat.appendTo(b)
	return buf.AppendU16LE(b, w.Size)
}

// GenericWaveFormat is the fallback audio layout. Only the 16-byte prefix is
// decoded; cbSize and any codec data stay in Extra.
type GenericWaveFormat struct {
	WaveFormat
	Extra []byte
}

// DecodeWaveFormat decodes the generic 16-byte audio layout.
func DecodeWaveFormat(b []byte) (*GenericWaveFormat, error) {
	if err := need("strf waveformat", b, WaveFormatSize); err != nil {
		return nil, err
	}
	r := fieldReader{b: b}
	w := &GenericWaveFormat{}
	w.WaveFormat.read(&r)
	w.Extra = r.rest()
	return w, nil
}

func (w *GenericWaveFormat) Kind() Kind { return KindWaveFormat }
func (w *GenericWaveFormat) Len() int   { return WaveFormatSize + len(w.Extra) }

func (w *GenericWaveFormat) AppendTo(b []byte) []byte {
	return append(w.WaveFormat.appendTo(b), w.Extra...)
}

// GUID is the SubFormat of WAVEFORMATEXTENSIBLE.
type GUID struct {
	Data1 uint32
	Data2 uint16
	Data3 uint16
	Data4 [8]byte
}

// WaveFormatExtensible is the strf layout for format tag 0xFFFE.
type WaveFormatExtensible struct {
	Format      WaveFormatEx
	Samples     uint16
	ChannelMask uint32
	SubFormat   GUID
	Extra       []byte
}

// DecodeWaveFormatExtensible decodes the 40-byte extensible layout.
func DecodeWaveFormatExtensible(b []byte) (*WaveFormatExtensible, error) {
	if err := need("strf waveformatextensible", b, WaveFormatExtensibleSize); err != nil {
		return nil, err
	}
	r := fieldReader{b: b}
	w := &WaveFormatExtensible{}
	w.Format.read(&r)
	w.Samples = r.u16()
	w.ChannelMask = r.u32()
	w.SubFormat.Data1 = r.u32()
	w.SubFormat.Data2 = r.u16()
	w.SubFormat.Data3 = r.u16()
	copy(w.SubFormat.Data4[:], b[r.off:r.off+8])
	r.off += 8
	w.Extra = r.rest()
	return w, nil
}

func (w *WaveFormatExtensible) Kind() Kind { return KindWaveFormatExtensible }
func (w *WaveFormatExtensible) Len() int   { return WaveFormatExtensibleSize + len(w.Extra) }

func (w *WaveFormatExtensible) AppendTo(b []byte) []byte {
	b = w.Format.appendTo(b)
	b = buf.AppendU16LE(b, w.Samples)
	b = buf.AppendU32LE(b, w.ChannelMask)
	b = buf.AppendU32LE(b, w.SubFormat.Data1)
	b = buf.AppendU16LE(b, w.SubFormat.Data2)
	b = buf.AppendU16LE(b, w.SubFormat.Data3)
	b = append(b, w.SubFormat.Data4[:]...)
	return append(b, w.Extra...)
}

// MPEG1WaveFormat is the strf layout for format tag 0x0050.
type MPEG1WaveFormat struct {
	WFX          WaveFormatEx
	HeadLayer    uint16
	HeadBitrate  uint32
	HeadMode     uint16
	HeadModeExt  uint16
	HeadEmphasis uint16
	HeadFlags    uint16
	PTSLow       uint32
	PTSHigh      uint32
	Extra        []byte
}

// DecodeMPEG1WaveFormat decodes the 40-byte MPEG-1 layout.
func DecodeMPEG1WaveFormat(b []byte) (*MPEG1WaveFormat, error) {
	if err := need("strf mpeg1waveformat", b, MPEG1WaveFormatSize); err != nil {
		return nil, err
	}
	r := fieldReader{b: b}
	w := &MPEG1WaveFormat{}
	w.WFX.read(&r)
	w.HeadLayer = r.u16()
	w.HeadBitrate = r.u32()
	w.HeadMode = r.u16()
	w.HeadModeExt = r.u16()
	w.HeadEmphasis = r.u16()
	w.HeadFlags = r.u16()
	w.PTSLow = r.u32()
	w.PTSHigh = r.u32()
	w.Extra = r.rest()
	return w, nil
}

func (w *MPEG1WaveFormat) Kind() Kind { return KindMPEG1WaveFormat }
func (w *MPEG1WaveFormat) Len() int   { return MPEG1WaveFormatSize + len(w.Extra) }

func (w *MPEG1WaveFormat) AppendTo(b []byte) []byte {
	b = w.WFX.appendTo(b)
	b = buf.AppendU16LE(b, w.HeadLayer)
	b = buf.AppendU32LE(b, w.HeadBitrate)
	b = buf.AppendU16LE(b, w.HeadMode)
	b = buf.AppendU16LE(b, w.HeadModeExt)
	b = buf.AppendU16LE(b, w.HeadEmphasis)
	b = buf.AppendU16LE(b, w.HeadFlags)
	b = buf.AppendU32LE(b, w.PTSLow)
	b = buf.AppendU32LE(b, w.PTSHigh)
	return append(b, w.Extra...)
}

// MPEGLayer3WaveFormat is the strf layout for format tag 0x0055.
type MPEGLayer3WaveFormat struct {
	WFX            WaveFormatEx
	ID             uint16
	Flags          uint32
	BlockSize      uint16
	FramesPerBlock uint16
	CodecDelay     uint16
	Extra          []byte
}

// DecodeMPEGLayer3WaveFormat decodes the 30-byte MP3 layout.
func DecodeMPEGLayer3WaveFormat(b []byte) (*MPEGLayer3WaveFormat, error) {
	if err := need("strf mpeglayer3waveformat", b, MPEGLayer3WaveFormatSize); err != nil {
		return nil, err
	}
	r := fieldReader{b: b}
	w := &MPEGLayer3WaveFormat{}
	w.WFX.read(&r)
	w.ID = r.u16()
	w.Flags = r.u32()
	w.BlockSize = r.u16()
	w.FramesPerBlock = r.u16()
	w.CodecDelay = r.u16()
	w.Extra = r.rest()
	return w, nil
}

func (w *MPEGLayer3WaveFormat) Kind() Kind { return KindMPEGLayer3WaveFormat }
func (w *MPEGLayer3WaveFormat) Len() int   { return MPEGLayer3WaveFormatSize + len(w.Extra) }

func (w *MPEGLayer3WaveFormat) AppendTo(b []byte) []byte {
	b = w.WFX.appendTo(b)
	b = buf.AppendU16LE(b, w.ID)
	b = buf.AppendU32LE(b, w.Flags)
	b = buf.AppendU16LE(b, w.BlockSize)
	b = buf.AppendU16LE(b, w.FramesPerBlock)
	b = buf.AppendU16LE(b, w.CodecDelay)
	return append(b, w.Extra...)
}
