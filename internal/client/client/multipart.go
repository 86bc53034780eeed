package client

import (
	"bytes"
	"fmt"
	"mime/multipart"
)

type formField struct {
	name  string
	value string
}

type filePart struct {
	field  string
	upload Upload
}

// encodeMultipart builds a multipart/form-data body. Fields are written in
// order, empty values included, followed by the file parts.
func encodeMultipart(fields []formField, files []filePart) (*bytes.Buffer, string, error) {
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)

	for _, f := range fields {
		if err := w.WriteField(f.name, f.value); err != nil {
			return nil, "", fmt.Errorf("write field %s: %w", f.name, err)
		}
	}
	for _, f := range files {
		part, err := w.CreateFormFile(f.field, f.upload.Filename)
		if err != nil {
			return nil, "", fmt.Errorf("create part %s: %w", f.field, err)
		}
		if _, err := part.Write(f.upload.Content); err != nil {
			return nil, "", fmt.Errorf("write part %s: %w", f.field, err)
		}
	}
	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("close multipart: %w", err)
	}
	return body, w.FormDataContentType(), nil
}
