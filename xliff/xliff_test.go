package xliff

import (
	"strings"
	"testing"

	qt "github.com/frankban/quicktest"

	"github.com/ortschema/ort/model"
)

func sampleConfig() *model.Config {
	return &model.Config{
		Languages: []string{"en", "fr"},
		Enums: []model.Enum{
			{
				Name: "status",
				Items: []model.EnumItem{
					{Name: "active", Labels: []model.Label{{Lang: 0, Text: "Active"}}},
					{Name: "inactive", Labels: []model.Label{{Lang: 0, Text: "Inactive"}, {Lang: 1, Text: "Inactif"}}},
				},
			},
		},
	}
}

func TestExtractWritesOneUnitPerLabel(t *testing.T) {
	c := qt.New(t)
	cfg := sampleConfig()

	var buf strings.Builder
	c.Assert(Extract(&buf, cfg), qt.IsNil)

	out := buf.String()
	c.Assert(out, qt.Contains, `target-language="fr"`)
	c.Assert(out, qt.Contains, "<source>Active</source>")
	c.Assert(out, qt.Contains, "<target>Inactif</target>")
}

func TestJoinAddsTranslationWithoutOverwriting(t *testing.T) {
	c := qt.New(t)
	cfg := sampleConfig()

	xliffIn := `<xliff version="1.2"><file target-language="fr">
<body>
<trans-unit id="x"><source>Active</source><target>Actif</target></trans-unit>
</body></file></xliff>`

	out, err := Join(cfg, false, strings.NewReader(xliffIn))
	c.Assert(err, qt.IsNil)

	var gotActif, stillInactif bool
	for _, l := range out.Enums[0].Items[0].Labels {
		if l.Lang == 1 && l.Text == "Actif" {
			gotActif = true
		}
	}
	for _, l := range out.Enums[0].Items[1].Labels {
		if l.Lang == 1 && l.Text == "Inactif" {
			stillInactif = true
		}
	}
	c.Assert(gotActif, qt.IsTrue)
	c.Assert(stillInactif, qt.IsTrue)

	// The original config must be untouched.
	c.Assert(len(cfg.Enums[0].Items[0].Labels), qt.Equals, 1)
}

func TestUpdateAddsMissingUnit(t *testing.T) {
	c := qt.New(t)
	cfg := sampleConfig()

	existing := `<xliff version="1.2"><file target-language="fr">
<body>
<trans-unit id="x"><source>Active</source><target>Actif</target></trans-unit>
</body></file></xliff>`

	var buf strings.Builder
	err := Update(&buf, strings.NewReader(existing), cfg, false, nil)
	c.Assert(err, qt.IsNil)

	out := buf.String()
	c.Assert(out, qt.Contains, "<source>Active</source>")
	c.Assert(out, qt.Contains, "<target>Actif</target>")
	c.Assert(out, qt.Contains, "<source>Inactive</source>")
}
