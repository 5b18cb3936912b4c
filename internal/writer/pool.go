package writer

import "sync"

// bufferPool recycles encode buffers across Write calls.
var bufferPool = sync.Pool{
	New: func() any {
		buf := make([]byte, 0, 256*1024)
		return &buf
	},
}

func getBuffer() *[]byte {
	buf, ok := bufferPool.Get().(*[]byte)
	if !ok {
		panic("bufferPool returned unexpected type")
	}
	return buf
}

// putBuffer returns buf to the pool. Buffers grown past 16 MiB are left to
// the GC so one large file does not pin memory.
func putBuffer(buf *[]byte) {
	if buf == nil || cap(*buf) > 16<<20 {
		return
	}
	*buf = (*buf)[:0]
	bufferPool.Put(buf)
}
