package render

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gardar/shipdoc/pkg/bol"
	"github.com/gardar/shipdoc/pkg/layout"
)

func TestMain(m *testing.M) {
	api.DisableConfigDir()
	os.Exit(m.Run())
}

const houseYAML = `
job:
  job_no: J-2024-118
  vessel: EVER GIVEN
  voyage: 0412E
  port_of_loading: SHANGHAI
house:
  house_no: HBL-55
  shipper:
    name: SHANGHAI TEXTILES CO
    address: |
      88 PUDONG AVENUE
      SHANGHAI
  description: "<p>COTTON YARN</p><p>HS 5205</p>"
  containers:
    - container_no: cmau1234567
      packages: 400
      package_type: bales
      gross_weight: "21,500.5"
      volume: 58
container_meta:
  - container_no: CMAU 1234567
    seal_no: SL998
    container_type_name: 40' DRY
`

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"", FormatPDF, false},
		{"PDF", FormatPDF, false},
		{" svg ", FormatSVG, false},
		{"png", FormatPNG, false},
		{"docx", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFormat(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUnknownFormat)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseInput(t *testing.T) {
	in, err := ParseInput([]byte(houseYAML))
	require.NoError(t, err)
	require.NotNil(t, in.House)
	assert.Equal(t, "HBL-55", in.House.HouseNo)
	require.Len(t, in.House.Containers, 1)
	assert.Equal(t, 400.0, in.House.Containers[0].Num("packages"))

	_, err = ParseInput([]byte(`{"job": {"job_no": "J-1"}}`))
	assert.ErrorIs(t, err, bol.ErrMissingHouse)

	_, err = ParseInput([]byte("house: [unclosed"))
	assert.Error(t, err)

	t.Run("json keeps logo", func(t *testing.T) {
		logo := logoPNG(t)
		in, err := ParseInput([]byte(`{
			"house": {"house_no": "HBL-56", "containers": [{"container_no": "CMAU7654321", "packages": 12}]},
			"branch": {"name": "HEAD OFFICE", "logo": "` + base64.StdEncoding.EncodeToString(logo) + `"}
		}`))
		require.NoError(t, err)
		require.NotNil(t, in.Branch)
		assert.Equal(t, logo, in.Branch.Logo)
		assert.Equal(t, "12", in.House.Containers[0].Str("packages"))
	})

	t.Run("yaml drops logo", func(t *testing.T) {
		in, err := ParseInput([]byte("house:\n  house_no: HBL-57\nbranch:\n  name: HQ\n  logo: aGVsbG8=\n"))
		require.NoError(t, err)
		require.NotNil(t, in.Branch)
		assert.Empty(t, in.Branch.Logo)
	})
}

func logoPNG(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 16, 16))
	for i := 0; i < 16; i++ {
		img.Set(i, i, color.RGBA{G: 160, A: 255})
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestLoadSettings(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(`
format: svg
logo: logo.png
layout:
  margin: 30
  fonts:
    value:
      family: Courier
      size: 8
  default_branch:
    name: HEAD OFFICE
`), 0o644))

	s, err := LoadSettings(path)
	require.NoError(t, err)
	assert.Equal(t, 30.0, s.Layout.Margin)
	assert.Equal(t, "Courier", s.Layout.Fonts.Value.Family)
	assert.Equal(t, layout.DefaultFonts.Title, s.Layout.Fonts.Title)
	assert.Equal(t, layout.DefaultConfig().LineHeight, s.Layout.LineHeight)
	assert.Equal(t, "HEAD OFFICE", s.Layout.DefaultBranch.Name)
	assert.Equal(t, filepath.Join(dir, "logo.png"), s.Logo)

	_, err = s.Options()
	assert.Error(t, err, "logo file does not exist")

	t.Run("unknown keys", func(t *testing.T) {
		bad := filepath.Join(dir, "bad.yml")
		require.NoError(t, os.WriteFile(bad, []byte("margins: 3\n"), 0o644))
		_, err := LoadSettings(bad)
		assert.Error(t, err)
	})

	t.Run("invalid layout", func(t *testing.T) {
		bad := filepath.Join(dir, "invalid.yml")
		require.NoError(t, os.WriteFile(bad, []byte("layout:\n  line_height: 0\n"), 0o644))
		_, err := LoadSettings(bad)
		assert.ErrorIs(t, err, layout.ErrInvalidConfig)
	})

	t.Run("no file", func(t *testing.T) {
		s, err := LoadSettings("")
		require.NoError(t, err)
		assert.Equal(t, DefaultSettings(), s)
	})
}

func TestDocument(t *testing.T) {
	in, err := ParseInput([]byte(houseYAML))
	require.NoError(t, err)

	for _, format := range []Format{FormatPDF, FormatSVG, FormatPNG} {
		t.Run(string(format), func(t *testing.T) {
			doc, err := Document(in, Options{Format: format, Layout: layout.DefaultConfig(), Validate: true})
			require.NoError(t, err)
			assert.Equal(t, 1, doc.PageCount())
			assert.NotEmpty(t, doc.Artifact)
			assert.True(t, strings.HasPrefix(doc.ContentType, "image/") || doc.ContentType == "application/pdf")
		})
	}

	t.Run("entry lines", func(t *testing.T) {
		doc, err := Document(in, Options{Format: FormatSVG, Layout: layout.DefaultConfig()})
		require.NoError(t, err)
		var texts []string
		for _, op := range doc.Pages[0].Ops {
			if op.Tag == layout.TagEntry {
				texts = append(texts, op.Text)
			}
		}
		assert.Equal(t, []string{"CMAU1234567", "40' DRY", "SEAL: SL998", "400 BALES", "G.W: 21,500.500 KGS", "MEAS: 58.000 CBM"}, texts)
	})

	t.Run("truncated logo is skipped", func(t *testing.T) {
		logo := logoPNG(t)
		for _, format := range []Format{FormatPDF, FormatSVG, FormatPNG} {
			for _, cut := range []int{40, len(logo) - 12} {
				doc, err := Document(in, Options{Format: format, Layout: layout.DefaultConfig(), Logo: logo[:cut], Validate: true})
				require.NoError(t, err, "%s cut at %d", format, cut)
				assert.Equal(t, 1, doc.PageCount())
			}
		}
	})

	t.Run("unknown format", func(t *testing.T) {
		_, err := Document(in, Options{Format: "tiff", Layout: layout.DefaultConfig()})
		assert.ErrorIs(t, err, ErrUnknownFormat)
	})
}
