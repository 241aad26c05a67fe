// logging_test.go: Test cases for the command logger.
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0

package logging

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestNew_Levels(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, false)
	log.Debug("hidden")
	log.Warn("shown", zap.String("scheme", "gcm"))
	_ = log.Sync()

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
	assert.Contains(t, buf.String(), "gcm")

	buf.Reset()
	log = New(&buf, true)
	log.Debug("debugging")
	_ = log.Sync()
	assert.Contains(t, buf.String(), "debugging")
}
