package platform

import (
	"encoding/base64"
	"fmt"
)

// Encode renders data in the encoding selected by opts. Base64 reads honour
// Position and Length.
func Encode(data []byte, opts ReadOptions) (string, error) {
	switch opts.Encoding {
	case "", EncodingUTF8:
		return string(data), nil
	case EncodingBase64:
		start := opts.Position
		if start < 0 {
			start = 0
		}
		if start > int64(len(data)) {
			start = int64(len(data))
		}
		end := int64(len(data))
		if opts.Length > 0 && opts.Length < end-start {
			end = start + opts.Length
		}
		return base64.StdEncoding.EncodeToString(data[start:end]), nil
	default:
		return "", fmt.Errorf("unsupported encoding %q", opts.Encoding)
	}
}

// Decode converts contents written with enc back to bytes.
func Decode(contents string, enc Encoding) ([]byte, error) {
	switch enc {
	case "", EncodingUTF8:
		return []byte(contents), nil
	case EncodingBase64:
		return base64.StdEncoding.DecodeString(contents)
	default:
		return nil, fmt.Errorf("unsupported encoding %q", enc)
	}
}
