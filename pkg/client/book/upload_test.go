/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package book

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zhang829-666/BookchainHF/pkg/common/providers/bookchain"
)

func TestUploadRequestForm(t *testing.T) {
	r := &UploadRequest{
		Title:      "Dune",
		Author:     "Herbert",
		IsBlindBox: false,
		CoverName:  "dune.png",
		Cover:      strings.NewReader("png-bytes"),
	}
	form := r.Form()

	assert.Equal(t, []bookchain.FormField{
		{Name: FieldTitle, Value: "Dune"},
		{Name: FieldAuthor, Value: "Herbert"},
		{Name: FieldIsBlindBox, Value: "false"},
	}, form.Fields)

	require.Len(t, form.Files, 1)
	assert.Equal(t, FieldCover, form.Files[0].Field)
	assert.Equal(t, "dune.png", form.Files[0].FileName)
	assert.Equal(t, "image/png", form.Files[0].ContentType)
}

func TestUploadRequestFormNoCover(t *testing.T) {
	form := (&UploadRequest{IsBlindBox: true}).Form()
	assert.Equal(t, []bookchain.FormField{{Name: FieldIsBlindBox, Value: "true"}}, form.Fields)
	assert.Empty(t, form.Files)

	form = (&UploadRequest{Cover: strings.NewReader("x"), CoverType: "image/jpeg"}).Form()
	require.Len(t, form.Files, 1)
	assert.Equal(t, "cover", form.Files[0].FileName)
	assert.Equal(t, "image/jpeg", form.Files[0].ContentType)
}
