package media

import (
	"encoding/base64"
	"fmt"
	"net/url"
	"strings"
)

// DecodeDataURL decodes an RFC 2397 `data:` URI into a Blob. This is the
// built-in resolver for opaque references that carry their payload inline;
// `blob:` references need a resolver supplied by the hosting environment.
func DecodeDataURL(s string) (*Blob, error) {
	rest := strings.TrimPrefix(s, "data:")
	if rest == s {
		return nil, fmt.Errorf("not a data: URL")
	}
	meta, payload, found := strings.Cut(rest, ",")
	if !found {
		return nil, fmt.Errorf("malformed data: URL: missing payload separator")
	}

	contentType := "text/plain"
	base64Encoded := false
	for i, part := range strings.Split(meta, ";") {
		switch {
		case part == "base64":
			base64Encoded = true
		case i == 0 && part != "":
			contentType = part
		}
	}

	var data []byte
	var err error
	if base64Encoded {
		data, err = base64.StdEncoding.DecodeString(payload)
	} else {
		var decoded string
		decoded, err = url.PathUnescape(payload)
		data = []byte(decoded)
	}
	if err != nil {
		return nil, fmt.Errorf("malformed data: URL payload: %w", err)
	}
	return &Blob{Data: data, ContentType: contentType}, nil
}
