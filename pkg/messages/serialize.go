package messages

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/klauspost/compress/zstd"
)

// SerializeMessage encodes a message for the wire: canonical JSON wrapped
// in a checksummed zstd frame. The encoding is bit-stable: equal messages
// produce equal bytes.
func SerializeMessage(m *Message) ([]byte, error) {
	b, err := json.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize message: %v", err)
	}

	if err := validateMessageBytes(b); err != nil {
		return nil, fmt.Errorf("refusing to serialize invalid message: %v", err)
	}

	compressed := bytes.NewBuffer(nil)
	compWriter, err := zstd.NewWriter(compressed, zstd.WithEncoderLevel(zstd.SpeedFastest), zstd.WithEncoderCRC(true))
	if err != nil {
		return nil, fmt.Errorf("failed to create zstd writer: %v", err)
	}
	if _, err := compWriter.Write(b); err != nil {
		return nil, fmt.Errorf("failed to compress message: %v", err)
	}
	if err := compWriter.Close(); err != nil {
		return nil, fmt.Errorf("failed to close zstd writer: %v", err)
	}

	return compressed.Bytes(), nil
}

// DeserializeMessage decodes and validates wire bytes. A truncated or
// bit-flipped payload fails the zstd frame checks; a structurally invalid
// or unrecognized message fails schema validation. Either way the error is
// fatal for the connection that produced the bytes.
func DeserializeMessage(data []byte) (*Message, error) {
	compReader, err := zstd.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to create zstd reader: %v", err)
	}
	defer compReader.Close()
	b, err := io.ReadAll(compReader)
	if err != nil {
		return nil, fmt.Errorf("failed to read decompressed message: %v", err)
	}

	if err := validateMessageBytes(b); err != nil {
		return nil, fmt.Errorf("failed to validate message: %v", err)
	}

	message := &Message{}
	if err := json.Unmarshal(b, message); err != nil {
		return nil, fmt.Errorf("failed to deserialize message: %v", err)
	}

	return message, nil
}

// validateMessageBytes checks the JSON encoding against the message schema
// before any field is interpreted.
func validateMessageBytes(b []byte) error {
	var decoded interface{}
	if err := json.Unmarshal(b, &decoded); err != nil {
		return fmt.Errorf("not valid JSON: %v", err)
	}
	if err := compiledMessageSchema.Validate(decoded); err != nil {
		return err
	}
	return nil
}
