package codec

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBase64RoundTrip(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"empty", []byte{}},
		{"ascii", []byte("hello world")},
		{"binary", []byte{0x00, 0xff, 0x89, 'P', 'N', 'G', 0x0d, 0x0a}},
		{"one byte", []byte{0x7f}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			decoded, err := DecodeBase64ToBytes(EncodeBase64Bytes(tt.data))
			require.NoError(t, err)
			assert.Equal(t, tt.data, decoded)
		})
	}
}

func TestEncodeBase64Unicode(t *testing.T) {
	text := "héllo 世界 🎉"
	assert.Equal(t, text, DecodeBase64ToText(EncodeBase64(text)))
	assert.Equal(t, "aGk=", EncodeBase64("hi"))
}

func TestDecodeBase64ToBytes(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []byte
		wantErr  bool
	}{
		{"plain", "aGVsbG8=", []byte("hello"), false},
		{"surrounding whitespace", "  aGVsbG8=\n", []byte("hello"), false},
		{"wrapped lines", "aGVs\r\nbG8=", []byte("hello"), false},
		{"bad alphabet", "a$b!", nil, true},
		{"bad padding", "aGVsbG8", nil, true},
		{"url alphabet", "-_-_", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DecodeBase64ToBytes(tt.input)
			if tt.wantErr {
				var de *DecodeError
				require.Error(t, err)
				assert.True(t, errors.As(err, &de))
				assert.Contains(t, err.Error(), "base64")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestDecodeBase64ToText(t *testing.T) {
	assert.Equal(t, "hello", DecodeBase64ToText("aGVsbG8="))
	assert.Equal(t, "not base64!", DecodeBase64ToText("not base64!"))
	// 0xff is not valid UTF-8
	assert.Equal(t, "a�b", DecodeBase64ToText(EncodeBase64Bytes([]byte{'a', 0xff, 'b'})))
}

func TestBytesToText(t *testing.T) {
	tests := []struct {
		name     string
		data     []byte
		mime     string
		expected string
	}{
		{"utf8 no charset", []byte("café"), "text/plain", "café"},
		{"latin1 charset", []byte("caf\xe9"), "text/plain; charset=iso-8859-1", "café"},
		{"windows-1252 charset", []byte("\x93hi\x94"), "text/html; charset=windows-1252", "“hi”"},
		{"explicit utf-8", []byte("caf\xc3\xa9"), "text/plain; charset=utf-8", "café"},
		{"unknown charset", []byte("abc"), "text/plain; charset=klingon", "abc"},
		{"invalid utf8 replaced", []byte{'x', 0xfe}, "", "x�"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, BytesToText(tt.data, tt.mime))
		})
	}
}

func TestMediaType(t *testing.T) {
	assert.Equal(t, "application/json", MediaType(" Application/JSON ; charset=utf-8"))
	assert.Equal(t, "", MediaType(""))
}

func TestExtensionForMime(t *testing.T) {
	tests := []struct {
		mime     string
		expected string
	}{
		{"application/json", "json"},
		{"application/json;charset=utf-8", "json"},
		{"TEXT/HTML", "html"},
		{"text/plain", "txt"},
		{"image/png", "png"},
		{"image/jpeg", "jpg"},
		{"image/gif", "gif"},
		{"image/webp", "webp"},
		{"audio/mpeg", "mp3"},
		{"video/mp4", "mp4"},
		{"application/vnd.api+json", "json"},
		{"application/x-protobuf", "protobuf"},
		{"", "bin"},
		{"weird", "bin"},
		{"application/", "bin"},
	}

	for _, tt := range tests {
		t.Run(tt.mime, func(t *testing.T) {
			assert.Equal(t, tt.expected, ExtensionForMime(tt.mime))
		})
	}
}

func BenchmarkDecodeBase64ToBytes(b *testing.B) {
	payload := EncodeBase64Bytes(make([]byte, 64*1024))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := DecodeBase64ToBytes(payload); err != nil {
			b.Fatal(err)
		}
	}
}
