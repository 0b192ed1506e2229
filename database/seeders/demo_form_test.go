package seeders

import (
	"testing"

	"formly.link/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbeddedDemoFormIsValid(t *testing.T) {
	df, err := parseDemoForm(demoFormYAML)
	require.NoError(t, err)
	assert.NotEmpty(t, df.Title)

	qs, err := df.questions()
	require.NoError(t, err)
	require.Len(t, qs, len(df.Questions))

	for i, q := range qs {
		assert.Equal(t, i, q.Position)
		assert.True(t, q.Type.IsKnown(), q.Key)
	}

	byKey := map[string]models.FormQuestion{}
	for _, q := range qs {
		byKey[q.Key] = q
	}
	assert.Equal(t, []string{"İstanbul", "Ankara", "İzmir", "Diğer"}, byKey["city"].OptionList())
	assert.Equal(t, 5, byKey["score"].RatingMax())
	assert.Empty(t, byKey["comments"].OptionList())
}

func TestParseDemoFormRejectsBadKey(t *testing.T) {
	_, err := parseDemoForm([]byte("key: not-a-key\ntitle: x\n"))
	assert.Error(t, err)

	_, err = parseDemoForm([]byte("key: [\n"))
	assert.Error(t, err)
}

func TestDemoQuestionsRejectUnknownType(t *testing.T) {
	df := demoForm{Key: "f0a1b2c3d4e", Questions: []demoQuestion{{Key: "x", Type: "hologram", Title: "X"}}}
	_, err := df.questions()
	assert.Error(t, err)
}
