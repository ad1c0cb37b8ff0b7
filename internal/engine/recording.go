package engine

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/zstd"

	"overmind/internal/model"
)

const (
	recordingExt           = ".jsonl"
	compressedRecordingExt = ".jsonl.zst"
)

// Header is the first line of a recording.
type Header struct {
	GameInfo
	Result model.Result `json:"result,omitempty"`
}

func isRecording(name string) bool {
	return strings.HasSuffix(name, recordingExt) || strings.HasSuffix(name, compressedRecordingExt)
}

// Recorder writes a recording: one header line, then one snapshot per line.
// Paths ending in .zst are zstd-compressed.
type Recorder struct {
	f   *os.File
	enc *zstd.Encoder
	bw  *bufio.Writer
}

func CreateRecording(path string, info GameInfo) (*Recorder, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return nil, err
	}
	r := &Recorder{f: f}
	var w io.Writer = f
	if strings.HasSuffix(path, ".zst") {
		enc, err := zstd.NewWriter(f, zstd.WithEncoderLevel(zstd.SpeedFastest))
		if err != nil {
			_ = f.Close()
			return nil, err
		}
		r.enc = enc
		w = enc
	}
	r.bw = bufio.NewWriterSize(w, 64*1024)
	if err := r.writeLine(Header{GameInfo: info}); err != nil {
		_ = r.abort()
		return nil, err
	}
	return r, nil
}

func (r *Recorder) Write(snapshot model.Snapshot) error {
	return r.writeLine(snapshot)
}

func (r *Recorder) writeLine(v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	if _, err := r.bw.Write(b); err != nil {
		return err
	}
	return r.bw.WriteByte('\n')
}

// Close flushes the recording. The result is appended as a trailing header
// line so a replay can report it.
func (r *Recorder) Close(result model.Result) error {
	if err := r.writeLine(trailer{Result: result}); err != nil {
		_ = r.abort()
		return err
	}
	if err := r.bw.Flush(); err != nil {
		_ = r.abort()
		return err
	}
	if r.enc != nil {
		if err := r.enc.Close(); err != nil {
			_ = r.f.Close()
			return err
		}
	}
	return r.f.Close()
}

func (r *Recorder) abort() error {
	if r.enc != nil {
		_ = r.enc.Close()
	}
	return r.f.Close()
}

// trailer is the optional last line of a recording.
type trailer struct {
	Result model.Result `json:"final_result"`
}

// recordingReader decodes a recording line by line.
type recordingReader struct {
	f       *os.File
	dec     *zstd.Decoder
	scanner *bufio.Scanner
	header  Header
}

func openRecording(path string) (*recordingReader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	r := &recordingReader{f: f}
	var src io.Reader = f
	if strings.HasSuffix(path, ".zst") {
		dec, err := zstd.NewReader(f)
		if err != nil {
			_ = f.Close()
			return nil, err
		}
		r.dec = dec
		src = dec
	}
	r.scanner = bufio.NewScanner(src)
	r.scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	if !r.scanner.Scan() {
		err := r.scanner.Err()
		_ = r.Close()
		if err == nil {
			err = io.ErrUnexpectedEOF
		}
		return nil, fmt.Errorf("read recording header %s: %w", path, err)
	}
	if err := json.Unmarshal(r.scanner.Bytes(), &r.header); err != nil {
		_ = r.Close()
		return nil, fmt.Errorf("decode recording header %s: %w", path, err)
	}
	return r, nil
}

// next returns the next snapshot, or ok=false at the end. A trailer line
// updates the header result.
func (r *recordingReader) next() (model.Snapshot, bool, error) {
	for r.scanner.Scan() {
		line := r.scanner.Bytes()
		if len(strings.TrimSpace(string(line))) == 0 {
			continue
		}
		var probe struct {
			FinalResult model.Result `json:"final_result"`
		}
		if err := json.Unmarshal(line, &probe); err == nil && probe.FinalResult != "" {
			r.header.Result = probe.FinalResult
			continue
		}
		var snapshot model.Snapshot
		if err := json.Unmarshal(line, &snapshot); err != nil {
			return model.Snapshot{}, false, fmt.Errorf("decode snapshot: %w", err)
		}
		return snapshot, true, nil
	}
	if err := r.scanner.Err(); err != nil {
		return model.Snapshot{}, false, err
	}
	return model.Snapshot{}, false, nil
}

func (r *recordingReader) Close() error {
	if r.dec != nil {
		r.dec.Close()
	}
	return r.f.Close()
}
