package ismrmrd

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	log "github.com/sirupsen/logrus"
)

// Reader reads acquisitions stored back to back: header, trajectory
// (float32) and data (complex64), all little-endian.
type Reader struct {
	r     *bufio.Reader
	count int
}

// NewReader returns a Reader reading from r.
func NewReader(r io.Reader) *Reader {
	return &Reader{r: bufio.NewReader(r)}
}

// Next reads the next acquisition. It returns io.EOF when the stream ends
// cleanly between two acquisitions.
func (r *Reader) Next() (Acquisition, error) {
	head := make([]byte, AcquisitionHeaderSize)
	n, err := io.ReadFull(r.r, head)
	if err != nil {
		if errors.Is(err, io.EOF) && n == 0 {
			return Acquisition{}, io.EOF
		}
		return Acquisition{}, fmt.Errorf("acquisition %d: reading header: %w", r.count, io.ErrUnexpectedEOF)
	}

	h, err := DecodeHeader(head)
	if err != nil {
		return Acquisition{}, fmt.Errorf("acquisition %d: %w", r.count, err)
	}

	acq := Acquisition{
		Head: head,
		Traj: make([]float32, h.TrajectoryLength()),
		Data: make([]complex64, h.DataLength()),
	}
	if err := readValues(r.r, acq.Traj); err != nil {
		return Acquisition{}, fmt.Errorf("acquisition %d: reading trajectory: %w", r.count, err)
	}
	if err := readValues(r.r, acq.Data); err != nil {
		return Acquisition{}, fmt.Errorf("acquisition %d: reading data: %w", r.count, err)
	}

	log.Debugf("read acquisition %d: scan counter %d, %d samples x %d channels",
		r.count, h.ScanCounter, h.NumberOfSamples, h.ActiveChannels)
	r.count++
	return acq, nil
}

// ReadAll reads acquisitions until the end of the stream. When max is
// positive at most max acquisitions are read.
func (r *Reader) ReadAll(max int) ([]Acquisition, error) {
	var acqs []Acquisition
	for max <= 0 || len(acqs) < max {
		acq, err := r.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		acqs = append(acqs, acq)
	}
	return acqs, nil
}

func readValues[T float32 | complex64](r io.Reader, dst []T) error {
	if len(dst) == 0 {
		return nil
	}
	err := binary.Read(r, ByteOrder, dst)
	if errors.Is(err, io.EOF) {
		return io.ErrUnexpectedEOF
	}
	return err
}

// Writer writes acquisitions in the layout read by Reader.
type Writer struct {
	w io.Writer
}

// NewWriter returns a Writer writing to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

// Write writes one acquisition. The trajectory and data lengths must agree
// with the header.
func (w *Writer) Write(acq Acquisition) error {
	h, err := acq.Header()
	if err != nil {
		return err
	}
	if len(acq.Traj) != h.TrajectoryLength() || len(acq.Data) != h.DataLength() {
		return fmt.Errorf("acquisition payload (%d traj, %d data) does not match header (%d traj, %d data)",
			len(acq.Traj), len(acq.Data), h.TrajectoryLength(), h.DataLength())
	}

	if _, err := w.w.Write(acq.Head); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	if len(acq.Traj) > 0 {
		if err := binary.Write(w.w, ByteOrder, acq.Traj); err != nil {
			return fmt.Errorf("writing trajectory: %w", err)
		}
	}
	if len(acq.Data) > 0 {
		if err := binary.Write(w.w, ByteOrder, acq.Data); err != nil {
			return fmt.Errorf("writing data: %w", err)
		}
	}
	return nil
}
