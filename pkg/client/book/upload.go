/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package book

import (
	"io"
	"mime"
	"path/filepath"
	"strconv"

	"github.com/zhang829-666/BookchainHF/pkg/common/providers/bookchain"
)

// Form field names of a book upload
const (
	FieldTitle       = "title"
	FieldAuthor      = "author"
	FieldDescription = "description"
	FieldCategory    = "category"
	FieldIsBlindBox  = "isBlindBox"
	FieldCover       = "cover"
)

// UploadRequest describes a book to upload or list as a blind box
type UploadRequest struct {
	Title       string
	Author      string
	Description string
	Category    string
	IsBlindBox  bool

	// CoverName is the file name of the cover image
	CoverName string
	// CoverType defaults to the type registered for the CoverName extension
	CoverType string
	Cover     io.Reader
}

// Form returns the multipart form for r. Empty text fields are left out;
// isBlindBox is always sent.
func (r *UploadRequest) Form() *bookchain.Multipart {
	form := bookchain.NewMultipart()
	for _, f := range []bookchain.FormField{
		{Name: FieldTitle, Value: r.Title},
		{Name: FieldAuthor, Value: r.Author},
		{Name: FieldDescription, Value: r.Description},
		{Name: FieldCategory, Value: r.Category},
	} {
		if f.Value != "" {
			form.AddField(f.Name, f.Value)
		}
	}
	form.AddField(FieldIsBlindBox, strconv.FormatBool(r.IsBlindBox))

	if r.Cover != nil {
		name := r.CoverName
		if name == "" {
			name = "cover"
		}
		contentType := r.CoverType
		if contentType == "" {
			contentType = mime.TypeByExtension(filepath.Ext(name))
		}
		form.AddFile(FieldCover, name, contentType, r.Cover)
	}
	return form
}
