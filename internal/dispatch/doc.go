// Package dispatch runs compiled jobs on a fixed pool of converter
// processes.
//
// Each worker owns one converter started in stdin mode. It pops batches of
// jobs from a shared queue, writes them one per line to the converter's
// stdin, and when the queue is empty closes stdin and waits for the
// converter to exit. The converter's stdout and stderr are drained
// concurrently into a shared console, one whole line per write.
package dispatch
