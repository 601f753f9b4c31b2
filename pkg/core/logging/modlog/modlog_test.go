/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package modlog

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/zhang829-666/BookchainHF/pkg/core/logging/api"
)

const (
	moduleName  = "module-xyz"
	moduleName2 = "module-xyz-deftest"
)

func TestDefaultLogging(t *testing.T) {
	var buf bytes.Buffer
	logger := NewProvider(&buf).GetLogger(moduleName)

	assert.Equal(t, api.INFO, GetLevel(moduleName), "default log level is INFO")

	logger.Infof("brown %s jumps over the lazy %s", "fox", "dog")
	assert.Contains(t, buf.String(), "level=info")
	assert.Contains(t, buf.String(), "module="+moduleName)
	assert.Contains(t, buf.String(), `msg="brown fox jumps over the lazy dog"`)
	buf.Reset()

	logger.Warn("careful")
	assert.Contains(t, buf.String(), "level=warn")
	buf.Reset()

	logger.Error("broken")
	assert.Contains(t, buf.String(), "level=error")
	buf.Reset()

	logger.Debug("brown fox jumps over the lazy dog")
	logger.Debugf("brown %s jumps over the lazy %s", "fox", "dog")
	assert.Empty(t, buf.String(), "debug log isn't supposed to show up for info level")
	assert.False(t, IsEnabledFor(moduleName, api.DEBUG))
}

func TestModuleLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := NewProvider(&buf).GetLogger(moduleName2)

	SetLevel(moduleName2, api.DEBUG)
	defer SetLevel(moduleName2, api.INFO)

	logger.Debug("visible")
	assert.Contains(t, buf.String(), "level=debug")
	buf.Reset()

	SetLevel(moduleName2, api.ERROR)
	logger.Warn("hidden")
	logger.Info("hidden")
	assert.Empty(t, buf.String())

	logger.Error("shown")
	assert.Contains(t, buf.String(), "msg=shown")
}

func TestChangeOutput(t *testing.T) {
	var first, second bytes.Buffer
	logger := NewProvider(&first).GetLogger(moduleName)

	logger.(*Log).ChangeOutput(&second)
	logger.Info("moved")

	assert.Empty(t, first.String())
	assert.Contains(t, second.String(), "msg=moved")
}
