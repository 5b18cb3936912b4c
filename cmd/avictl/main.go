// Command avictl inspects, verifies and edits AVI files.
package main

func main() {
	execute()
}
