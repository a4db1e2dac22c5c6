package extract

import (
	"archive/zip"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const documentXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
  <w:body>
    <w:p><w:r><w:t>Jane Doe</w:t></w:r></w:p>
    <w:p><w:r><w:t xml:space="preserve">Python developer, </w:t></w:r><w:r><w:t>6 years</w:t></w:r></w:p>
    <w:p></w:p>
    <w:p><w:r><w:t>BSc</w:t><w:tab/><w:t>State University</w:t></w:r></w:p>
  </w:body>
</w:document>`

func writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, data, 0o600))
	return path
}

func writeDocx(t *testing.T, name string, files map[string]string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	f, err := os.Create(path)
	require.NoError(t, err)

	zw := zip.NewWriter(f)
	for entry, content := range files {
		w, err := zw.Create(entry)
		require.NoError(t, err)
		_, err = w.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	require.NoError(t, f.Close())
	return path
}

func TestTextPlain(t *testing.T) {
	t.Parallel()

	path := writeFile(t, "resume.TXT", []byte("Go developer\n\xff\xfe5 years"))
	got, err := Text(path)
	require.NoError(t, err)
	assert.Equal(t, "Go developer\n5 years", got)
	assert.NotContains(t, got, "\uFFFD")
}

func TestTextDocx(t *testing.T) {
	t.Parallel()

	path := writeDocx(t, "resume.docx", map[string]string{
		"[Content_Types].xml": "<Types/>",
		"word/document.xml":   documentXML,
	})

	got, err := Text(path)
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe\nPython developer, 6 years\nBSc\tState University", got)
}

func TestTextDocxWithoutBody(t *testing.T) {
	t.Parallel()

	path := writeDocx(t, "broken.docx", map[string]string{"word/styles.xml": "<styles/>"})
	_, err := Text(path)
	assert.ErrorContains(t, err, "no word/document.xml")
}

func TestTextInvalidPDF(t *testing.T) {
	t.Parallel()

	path := writeFile(t, "resume.pdf", []byte("definitely not a pdf"))
	_, err := Text(path)
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrUnsupportedFormat))
}

func TestTextUnsupportedFormat(t *testing.T) {
	t.Parallel()

	for _, name := range []string{"resume.odt", "resume", "posting.html"} {
		t.Run(name, func(t *testing.T) {
			_, err := Text(filepath.Join(t.TempDir(), name))
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrUnsupportedFormat)

			var unsupported *UnsupportedFormatError
			require.ErrorAs(t, err, &unsupported)
			assert.Equal(t, filepath.Ext(name), unsupported.Ext)
		})
	}
}

func TestTextMissingFile(t *testing.T) {
	t.Parallel()

	_, err := Text(filepath.Join(t.TempDir(), "missing.txt"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestJobDescriptionHTML(t *testing.T) {
	t.Parallel()

	page := `<html><head><style>p{color:red}</style><script>var x = 1;</script></head>
<body><nav>Home | Jobs</nav>
<h1>Backend   Engineer</h1>
<p>We need 5 years experience&nbsp;with Python.</p>
<ul><li>bachelor's degree</li><li>services</li></ul>
<footer>© Acme</footer></body></html>`

	got, err := JobDescription(writeFile(t, "posting.html", []byte(page)))
	require.NoError(t, err)
	assert.Equal(t, "Backend Engineer\nWe need 5 years experience with Python.\nbachelor's degree\nservices", got)
}

func TestJobDescriptionHTMLWithoutBlocks(t *testing.T) {
	t.Parallel()

	got, err := JobDescription(writeFile(t, "posting.htm", []byte("<body><div>Go   engineer</div></body>")))
	require.NoError(t, err)
	assert.Equal(t, "Go engineer", got)
}

func TestJobDescriptionFallsBackToText(t *testing.T) {
	t.Parallel()

	got, err := JobDescription(writeFile(t, "jd.txt", []byte("python backend")))
	require.NoError(t, err)
	assert.Equal(t, "python backend", got)
}
