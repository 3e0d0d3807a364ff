// Package serialization encodes run artifacts (node result sets, pixel
// buffers) with a pluggable codec and optional compression.
package serialization

import (
	"bytes"
	"compress/gzip"
	"encoding/json"
	"fmt"
	"io"

	"github.com/klauspost/compress/zstd"
	"github.com/vmihailenco/msgpack/v5"
)

// Codec encodes and decodes values to bytes.
type Codec interface {
	Encode(v interface{}) ([]byte, error)
	Decode(data []byte, v interface{}) error
	Name() string
}

// CompressionType selects the compression applied after encoding.
type CompressionType string

const (
	CompressionNone CompressionType = "none"
	CompressionGzip CompressionType = "gzip"
	CompressionZstd CompressionType = "zstd"
)

// Config holds serializer settings.
type Config struct {
	Codec       Codec
	Compression CompressionType
}

// Serializer is an encode-then-compress pipeline. Pixel buffers compress
// well, so the default pairs msgpack with zstd.
type Serializer struct {
	config Config
}

// NewSerializer creates a serializer with the given configuration.
func NewSerializer(config Config) *Serializer {
	if config.Codec == nil {
		config.Codec = &MsgpackCodec{}
	}
	if config.Compression == "" {
		config.Compression = CompressionNone
	}
	return &Serializer{config: config}
}

// DefaultSerializer returns the msgpack+zstd serializer used for run
// snapshots.
func DefaultSerializer() *Serializer {
	return NewSerializer(Config{Codec: &MsgpackCodec{}, Compression: CompressionZstd})
}

// Serialize encodes then compresses v.
func (s *Serializer) Serialize(v interface{}) ([]byte, error) {
	data, err := s.config.Codec.Encode(v)
	if err != nil {
		return nil, fmt.Errorf("codec encoding failed: %w", err)
	}
	data, err = s.compress(data)
	if err != nil {
		return nil, fmt.Errorf("compression failed: %w", err)
	}
	return data, nil
}

// Deserialize decompresses then decodes data into v.
func (s *Serializer) Deserialize(data []byte, v interface{}) error {
	data, err := s.decompress(data)
	if err != nil {
		return fmt.Errorf("decompression failed: %w", err)
	}
	if err := s.config.Codec.Decode(data, v); err != nil {
		return fmt.Errorf("codec decoding failed: %w", err)
	}
	return nil
}

func (s *Serializer) compress(data []byte) ([]byte, error) {
	switch s.config.Compression {
	case CompressionGzip:
		var buf bytes.Buffer
		w := gzip.NewWriter(&buf)
		if _, err := w.Write(data); err != nil {
			return nil, err
		}
		if err := w.Close(); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	case CompressionZstd:
		enc, err := zstd.NewWriter(nil)
		if err != nil {
			return nil, err
		}
		defer enc.Close()
		return enc.EncodeAll(data, nil), nil
	default:
		return data, nil
	}
}

func (s *Serializer) decompress(data []byte) ([]byte, error) {
	switch s.config.Compression {
	case CompressionGzip:
		r, err := gzip.NewReader(bytes.NewReader(data))
		if err != nil {
			return nil, err
		}
		defer r.Close()
		return io.ReadAll(r)
	case CompressionZstd:
		dec, err := zstd.NewReader(nil)
		if err != nil {
			return nil, err
		}
		defer dec.Close()
		return dec.DecodeAll(data, nil)
	default:
		return data, nil
	}
}

// JSONCodec encodes values as JSON.
type JSONCodec struct{}

func (c *JSONCodec) Encode(v interface{}) ([]byte, error)    { return json.Marshal(v) }
func (c *JSONCodec) Decode(data []byte, v interface{}) error { return json.Unmarshal(data, v) }
func (c *JSONCodec) Name() string                            { return "json" }

// MsgpackCodec encodes values as MessagePack.
type MsgpackCodec struct{}

func (c *MsgpackCodec) Encode(v interface{}) ([]byte, error)    { return msgpack.Marshal(v) }
func (c *MsgpackCodec) Decode(data []byte, v interface{}) error { return msgpack.Unmarshal(data, v) }
func (c *MsgpackCodec) Name() string                            { return "msgpack" }
