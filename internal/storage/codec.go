package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/klauspost/compress/zstd"

	"overmind/internal/model"
)

const (
	CurrentSchemaVersion = 1
	CurrentCodecVersion  = 1
)

var ErrVersionMismatch = errors.New("record version mismatch")

// stamp fills unset versions with the current ones.
func stamp(v *model.VersionedRecord) {
	if v.SchemaVersion == 0 {
		v.SchemaVersion = CurrentSchemaVersion
	}
	if v.CodecVersion == 0 {
		v.CodecVersion = CurrentCodecVersion
	}
}

func EncodeWeights(record model.WeightRecord) ([]byte, error) {
	stamp(&record.VersionedRecord)
	return json.Marshal(record)
}

func DecodeWeights(data []byte) (model.WeightRecord, error) {
	var record model.WeightRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return model.WeightRecord{}, err
	}
	if err := checkVersion(record.VersionedRecord); err != nil {
		return model.WeightRecord{}, err
	}
	return record, nil
}

func EncodeSessionReport(report model.SessionReport) ([]byte, error) {
	stamp(&report.VersionedRecord)
	return json.Marshal(report)
}

func DecodeSessionReport(data []byte) (model.SessionReport, error) {
	var report model.SessionReport
	if err := json.Unmarshal(data, &report); err != nil {
		return model.SessionReport{}, err
	}
	if err := checkVersion(report.VersionedRecord); err != nil {
		return model.SessionReport{}, err
	}
	return report, nil
}

var (
	zstdEncoder, _ = zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	zstdDecoder, _ = zstd.NewReader(nil)
)

// Compress wraps an encoded payload in a zstd frame.
func Compress(payload []byte) []byte {
	return zstdEncoder.EncodeAll(payload, make([]byte, 0, len(payload)/2))
}

func Decompress(data []byte) ([]byte, error) {
	out, err := zstdDecoder.DecodeAll(data, nil)
	if err != nil {
		return nil, fmt.Errorf("zstd decode: %w", err)
	}
	return out, nil
}

func checkVersion(v model.VersionedRecord) error {
	if v.SchemaVersion != CurrentSchemaVersion || v.CodecVersion != CurrentCodecVersion {
		return ErrVersionMismatch
	}
	return nil
}

func sortKeys(keys []model.WeightKey) {
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].Race != keys[j].Race {
			return keys[i].Race < keys[j].Race
		}
		return keys[i].Role < keys[j].Role
	})
}
