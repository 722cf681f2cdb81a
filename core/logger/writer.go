package logger

import (
	"bufio"
	"errors"
	"io"
	"sync"
)

// fanoutWriter buffers log lines and fans them out to one or more sinks
// from a single goroutine, keeping handler call sites non-blocking.
type fanoutWriter struct {
	queue    chan []byte
	flushReq chan chan error
	done     chan struct{}
	once     sync.Once

	mu       sync.Mutex
	sinks    []*bufio.Writer
	writeErr error
}

func newFanoutWriter(writers []io.Writer, bufSize int) *fanoutWriter {
	if bufSize <= 0 {
		bufSize = 64 * 1024
	}
	sinks := make([]*bufio.Writer, 0, len(writers))
	for _, w := range writers {
		if w == nil {
			continue
		}
		sinks = append(sinks, bufio.NewWriterSize(w, bufSize))
	}
	fw := &fanoutWriter{
		queue:    make(chan []byte, 256),
		flushReq: make(chan chan error),
		done:     make(chan struct{}),
		sinks:    sinks,
	}
	go fw.loop()
	return fw
}

func (w *fanoutWriter) loop() {
	for {
		select {
		case line, ok := <-w.queue:
			if !ok {
				w.flushAll()
				close(w.done)
				return
			}
			if len(line) > 0 {
				w.writeAll(line)
			}
		case ack := <-w.flushReq:
			ack <- w.flushAll()
		}
	}
}

// Write enqueues the payload; when the queue is full it blocks rather than drop lines.
func (w *fanoutWriter) Write(p []byte) error {
	if err := w.err(); err != nil {
		return err
	}
	if len(p) == 0 {
		return nil
	}
	line := make([]byte, len(p))
	copy(line, p)
	w.queue <- line
	return nil
}

// Flush waits until all buffered content reaches the sinks.
func (w *fanoutWriter) Flush() error {
	if err := w.err(); err != nil {
		return err
	}
	ack := make(chan error, 1)
	w.flushReq <- ack
	return <-ack
}

// Close drains the queue and reports the first encountered write error.
func (w *fanoutWriter) Close() error {
	w.once.Do(func() {
		close(w.queue)
	})
	<-w.done
	return w.err()
}

func (w *fanoutWriter) writeAll(p []byte) {
	w.mu.Lock()
	defer w.mu.Unlock()
	for _, sink := range w.sinks {
		if _, err := sink.Write(p); err != nil {
			w.recordErr(err)
			return
		}
		if err := sink.Flush(); err != nil {
			w.recordErr(err)
			return
		}
	}
}

func (w *fanoutWriter) flushAll() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	var errs []error
	for _, sink := range w.sinks {
		if err := sink.Flush(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (w *fanoutWriter) err() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.writeErr
}

// recordErr keeps the first write error; callers must hold mu.
func (w *fanoutWriter) recordErr(err error) {
	if err != nil && w.writeErr == nil {
		w.writeErr = err
	}
}
