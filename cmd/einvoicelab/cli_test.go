package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	invoiceDomain "github.com/davicafu/einvoicelab/internal/invoice/domain"
	"github.com/davicafu/einvoicelab/internal/invoice/generator"
)

func runCLI(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(append([]string{"--no-color"}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func TestSamplesCmd(t *testing.T) {
	t.Run("table", func(t *testing.T) {
		out, err := runCLI(t, "", "samples")
		require.NoError(t, err)
		assert.Contains(t, out, "DESCRIPTION")
		assert.Equal(t, len(generator.SampleIDs())+1, strings.Count(out, "\n"))
	})

	t.Run("yaml keeps api field names", func(t *testing.T) {
		out, err := runCLI(t, "", "samples", "--output", "yaml")
		require.NoError(t, err)

		var views []map[string]interface{}
		require.NoError(t, yaml.Unmarshal([]byte(out), &views))
		require.Len(t, views, len(generator.SampleIDs()))
		assert.Equal(t, "/api/e-invoice/sample/1", views[0]["endpoint"])
	})

	t.Run("single sample as json", func(t *testing.T) {
		out, err := runCLI(t, "", "samples", "2")
		require.NoError(t, err)

		var p invoiceDomain.Payload
		require.NoError(t, json.Unmarshal([]byte(out), &p))
		want, _ := generator.Sample(2)
		assert.Equal(t, want.DocDtls.No, p.DocDtls.No)
	})

	t.Run("unknown sample", func(t *testing.T) {
		_, err := runCLI(t, "", "samples", "99")
		assert.ErrorContains(t, err, "not found")
	})
}

func TestGenerateCmd(t *testing.T) {
	out, err := runCLI(t, "", "generate", "-n", "3", "-s", "credit_note", "--seed", "11", "-o", "json")
	require.NoError(t, err)

	var payloads []invoiceDomain.Payload
	require.NoError(t, json.Unmarshal([]byte(out), &payloads))
	require.Len(t, payloads, 3)
	for _, p := range payloads {
		assert.Equal(t, "CRN", p.DocDtls.Typ)
		assert.Empty(t, invoiceDomain.ValidateBasic(p))
	}

	again, err := runCLI(t, "", "generate", "-n", "3", "-s", "credit_note", "--seed", "11", "-o", "json")
	require.NoError(t, err)
	assert.Equal(t, out, again, "misma semilla, misma salida")

	_, err = runCLI(t, "", "generate", "-s", "barter")
	assert.ErrorIs(t, err, invoiceDomain.ErrUnknownScenario)

	_, err = runCLI(t, "", "generate", "-n", "0")
	assert.ErrorContains(t, err, "count must be between")

	_, err = runCLI(t, "", "generate", "-o", "xml")
	assert.ErrorContains(t, err, "unknown output format")
}

func TestValidateCmd(t *testing.T) {
	valid, err := json.Marshal(generator.DefaultSample())
	require.NoError(t, err)

	t.Run("valid file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "invoice.json")
		require.NoError(t, os.WriteFile(path, valid, 0o600))

		out, err := runCLI(t, "", "validate", path)
		require.NoError(t, err)
		assert.Contains(t, out, "Invoice is valid")
	})

	t.Run("invalid from stdin", func(t *testing.T) {
		out, err := runCLI(t, `{"Version":"1.0"}`, "validate", "-", "-o", "json")
		assert.ErrorIs(t, err, errInvalidDocument)

		var res struct {
			IsValid bool     `json:"isValid"`
			Errors  []string `json:"errors"`
		}
		require.NoError(t, json.Unmarshal([]byte(out), &res))
		assert.False(t, res.IsValid)
		assert.Contains(t, res.Errors, "Version must be 1.1")
	})

	t.Run("broken json", func(t *testing.T) {
		_, err := runCLI(t, "{", "validate", "-")
		assert.ErrorContains(t, err, "invalid JSON")
	})
}
