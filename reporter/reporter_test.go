// Copyright 2020-2025 Buf Technologies, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package reporter_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bufbuild/protoschema/ast"
	"github.com/bufbuild/protoschema/reporter"
)

func TestErrorWithPos(t *testing.T) {
	t.Parallel()
	underlying := errors.New("unexpected token")
	pos := ast.SourcePos{Filename: "foo.proto", Line: 3, Col: 7, Offset: 40}
	err := reporter.Error(pos, underlying)
	assert.Equal(t, "foo.proto:3:7: unexpected token", err.Error())
	assert.Equal(t, pos, err.GetPosition())
	assert.ErrorIs(t, err, underlying)
}

func TestHandlerAbortsByDefault(t *testing.T) {
	t.Parallel()
	h := reporter.NewHandler(nil)
	pos := ast.SourcePos{Filename: "a.proto", Line: 1, Col: 1}
	err := h.HandleErrorf(pos, "bad %s", "thing")
	require.Error(t, err)
	assert.Equal(t, "a.proto:1:1: bad thing", err.Error())
	// later errors return the first one
	err2 := h.HandleErrorf(pos, "another")
	assert.Equal(t, err, err2)
	assert.Equal(t, err, h.Error())
}

func TestHandlerCollectsSwallowedErrors(t *testing.T) {
	t.Parallel()
	var errs []reporter.ErrorWithPos
	var warnings []reporter.ErrorWithPos
	rep := reporter.NewReporter(
		func(err reporter.ErrorWithPos) error {
			errs = append(errs, err)
			return nil
		},
		func(err reporter.ErrorWithPos) {
			warnings = append(warnings, err)
		},
	)
	h := reporter.NewHandler(rep)
	pos := ast.SourcePos{Filename: "a.proto", Line: 2, Col: 5}
	require.NoError(t, h.HandleErrorf(pos, "first"))
	require.NoError(t, h.HandleErrorf(pos, "second"))
	h.HandleWarningf(pos, "syntax %q is not recognized", "proto4")
	require.Len(t, errs, 2)
	require.Len(t, warnings, 1)
	assert.Equal(t, `a.proto:2:5: syntax "proto4" is not recognized`, warnings[0].Error())
	assert.NoError(t, h.ReporterError())
	assert.ErrorIs(t, h.Error(), reporter.ErrInvalidSource)
}

func TestHandlerNoErrors(t *testing.T) {
	t.Parallel()
	h := reporter.NewHandler(nil)
	assert.NoError(t, h.Error())
}
