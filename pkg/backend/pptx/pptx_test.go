package pptx

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/shouni/go-slide-kit/pkg/backend"
	"github.com/shouni/go-slide-kit/pkg/theme"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readParts(t *testing.T, data []byte) map[string]string {
	t.Helper()
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)

	out := make(map[string]string, len(zr.File))
	for _, f := range zr.File {
		rc, err := f.Open()
		require.NoError(t, err)
		b, err := io.ReadAll(rc)
		require.NoError(t, err)
		require.NoError(t, rc.Close())
		out[f.Name] = string(b)
	}
	return out
}

func wellFormed(t *testing.T, name, doc string) {
	t.Helper()
	dec := xml.NewDecoder(strings.NewReader(doc))
	for {
		_, err := dec.Token()
		if errors.Is(err, io.EOF) {
			return
		}
		require.NoError(t, err, name)
	}
}

func buildSample(t *testing.T) []byte {
	t.Helper()
	doc := New(theme.Modern())
	doc.Now = func() time.Time { return time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC) }

	title, err := doc.CreateSlide(0)
	require.NoError(t, err)
	require.NoError(t, title.SetText(0, "R&D <Intro>"))
	require.NoError(t, title.ApplyFormatting(0, theme.Formatting{Font: "Calibri", Size: 44, Bold: true, Align: theme.AlignCenter}))
	require.NoError(t, title.SetText(1, "Subtitle"))

	content, err := doc.CreateSlide(1)
	require.NoError(t, err)
	require.NoError(t, content.SetText(0, "Overview"))
	require.NoError(t, content.SetParagraphs(1, []string{"first", "second"}))
	require.NoError(t, content.ApplyFormatting(1, theme.Formatting{
		Font:     "Calibri",
		Size:     18,
		Color:    theme.RGB{R: 68, G: 68, B: 68},
		Margins:  theme.UniformMargins(0.1),
		WordWrap: true,
		AutoFit:  theme.AutoFitShrink,
		Spacing:  &theme.Spacing{Before: 0, After: 4},
	}))

	section, err := doc.CreateSlide(2)
	require.NoError(t, err)
	require.NoError(t, section.SetText(0, "Part"))

	var buf bytes.Buffer
	require.NoError(t, doc.Encode(&buf))
	return buf.Bytes()
}

func TestEncodePackage(t *testing.T) {
	files := readParts(t, buildSample(t))

	for _, name := range []string{
		"[Content_Types].xml",
		"_rels/.rels",
		"docProps/core.xml",
		"docProps/app.xml",
		"ppt/presentation.xml",
		"ppt/_rels/presentation.xml.rels",
		"ppt/theme/theme1.xml",
		"ppt/slideMasters/slideMaster1.xml",
		"ppt/slideMasters/_rels/slideMaster1.xml.rels",
		"ppt/slideLayouts/slideLayout1.xml",
		"ppt/slideLayouts/slideLayout7.xml",
		"ppt/slides/slide1.xml",
		"ppt/slides/slide3.xml",
		"ppt/slides/_rels/slide3.xml.rels",
	} {
		assert.Contains(t, files, name)
	}
	assert.NotContains(t, files, "ppt/slides/slide4.xml")

	t.Run("全パートが整形式の XML であること", func(t *testing.T) {
		for name, body := range files {
			wellFormed(t, name, body)
		}
	})

	t.Run("スライドがプレゼンテーションと Content Types に登録されること", func(t *testing.T) {
		pres := files["ppt/presentation.xml"]
		assert.Equal(t, 3, strings.Count(pres, "<p:sldId "))
		assert.Contains(t, files["ppt/_rels/presentation.xml.rels"], `Id="rId7" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/slide" Target="slides/slide3.xml"`)
		assert.Contains(t, files["[Content_Types].xml"], `/ppt/slides/slide3.xml`)
		assert.Contains(t, files["docProps/app.xml"], "<Slides>3</Slides>")
	})

	t.Run("スライドはレイアウト番号+1のレイアウトを参照すること", func(t *testing.T) {
		assert.Contains(t, files["ppt/slides/_rels/slide1.xml.rels"], "slideLayout1.xml")
		assert.Contains(t, files["ppt/slides/_rels/slide2.xml.rels"], "slideLayout2.xml")
		assert.Contains(t, files["ppt/slides/_rels/slide3.xml.rels"], "slideLayout3.xml")
	})

	t.Run("タイトルの書式と文字のエスケープ", func(t *testing.T) {
		s1 := files["ppt/slides/slide1.xml"]
		assert.Contains(t, s1, "R&amp;D &lt;Intro&gt;")
		assert.Contains(t, s1, `<p:ph type="ctrTitle"/>`)
		assert.Contains(t, s1, `<p:ph type="subTitle" idx="1"/>`)
		assert.Contains(t, s1, `sz="4400" b="1"`)
		assert.Contains(t, s1, `algn="ctr"`)
		assert.Contains(t, files["docProps/core.xml"], "<dc:title>R&amp;D &lt;Intro&gt;</dc:title>")
		assert.Contains(t, files["docProps/core.xml"], "2026-01-02T03:04:05Z")
	})

	t.Run("箇条書きの枠設定と段落間隔", func(t *testing.T) {
		s2 := files["ppt/slides/slide2.xml"]
		assert.Contains(t, s2, `<a:bodyPr wrap="square" lIns="91440" tIns="91440" rIns="91440" bIns="91440"><a:normAutofit/></a:bodyPr>`)
		assert.Equal(t, 2, strings.Count(s2, `<a:spcAft><a:spcPts val="400"/></a:spcAft>`))
		assert.Contains(t, s2, `<a:srgbClr val="444444"/>`)
		assert.Contains(t, s2, `<a:latin typeface="Calibri"/>`)
		assert.Contains(t, s2, "<a:t>second</a:t>")
	})

	t.Run("テーマの配色とフォントがマスターに反映されること", func(t *testing.T) {
		th := files["ppt/theme/theme1.xml"]
		assert.Contains(t, th, `<a:accent1><a:srgbClr val="4472C4"/></a:accent1>`)
		assert.Contains(t, th, `<a:majorFont><a:latin typeface="Calibri"/>`)
		assert.Contains(t, files["ppt/slideMasters/slideMaster1.xml"], `sz="4400"`)
	})
}

func TestEmptyDocument(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, New(nil).Encode(&buf))
	files := readParts(t, buf.Bytes())
	assert.NotContains(t, files["ppt/presentation.xml"], "sldIdLst")
	assert.Contains(t, files["docProps/core.xml"], "<dc:title>Modern</dc:title>")
	for name, body := range files {
		wellFormed(t, name, body)
	}
}

func TestPlaceholderValidation(t *testing.T) {
	doc := New(theme.Corporate())

	_, err := doc.CreateSlide(7)
	assert.ErrorIs(t, err, backend.ErrNoSuchLayout)

	section, err := doc.CreateSlide(5)
	require.NoError(t, err)
	assert.NoError(t, section.SetText(0, "Only title"))
	assert.ErrorIs(t, section.SetText(1, "no body"), backend.ErrNoSuchPlaceholder)
	assert.ErrorIs(t, section.ApplyFormatting(3, theme.Formatting{}), backend.ErrNoSuchPlaceholder)
}

func TestPlaceholderTablesAgree(t *testing.T) {
	for _, l := range layouts {
		var idxs []int
		for _, s := range l.Shapes {
			idxs = append(idxs, s.Idx)
		}
		if len(idxs) == 0 {
			assert.Empty(t, backend.Placeholders[l.ID], l.Name)
			continue
		}
		assert.Equal(t, backend.Placeholders[l.ID], idxs, l.Name)
	}
}
