// Copyright (c) 2026 Vidora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package normalize_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/vidora/pkg/normalize"
)

/*
TestUsername verifies canonical username folding.
*/
func TestUsername(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"already_canonical", "ada", "ada"},
		{"uppercase", "Ada", "ada"},
		{"surrounding_space", "  ada  ", "ada"},
		{"accented", "Ádá", "ada"},
		{"mixed_unicode", "JOSÉ", "jose"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, normalize.Username(tt.input))
		})
	}
}

/*
TestEmail verifies that emails are lowercased but not stripped of accents.
*/
func TestEmail(t *testing.T) {
	assert.Equal(t, "ada@x.com", normalize.Email(" Ada@X.Com "))
	assert.Equal(t, "josé@x.com", normalize.Email("JOSÉ@x.com"))
}
