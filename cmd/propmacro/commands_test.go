package main

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/alecthomas/assert/v2"
	"github.com/fatih/color"
	"github.com/goccy/go-yaml"
	"github.com/shibukawa/propmacro/testhelper"
)

const testSchema = `
	classes:
		- name: User
			properties:
				- {name: displayName, macro: reads, path: nick, default: anonymous}
				- {name: adult, macro: gte, path: age, value: 18}
				- {name: city, macro: alias, path: address.city}
				- {name: old, macro: deprecatingAlias, path: nick, message: gone}
`

const testData = `
	nick: ""
	age: 20
	address:
		city: Tokyo
	tags: [a, b]
`

func setup(t *testing.T) (*Context, string) {
	t.Helper()

	color.NoColor = true

	dir := testhelper.WriteFiles(t, map[string]string{
		"propmacro.yaml": testhelper.TrimIndent(t, testSchema),
		"user.yaml":      testhelper.TrimIndent(t, testData),
	})

	return &Context{Config: filepath.Join(dir, "propmacro.yaml"), Quiet: true}, filepath.Join(dir, "user.yaml")
}

func TestEvalFields(t *testing.T) {
	ctx, data := setup(t)

	var buf bytes.Buffer

	cmd := &EvalCmd{Data: data, Class: "User", Field: []string{"displayName", "adult", "city"}, Format: "text"}
	assert.NoError(t, cmd.run(ctx, &buf))
	assert.Equal(t, "displayName: \nadult: true\ncity: Tokyo\n", buf.String())
}

func TestEvalAllVirtualProperties(t *testing.T) {
	ctx, data := setup(t)

	var buf bytes.Buffer

	cmd := &EvalCmd{Data: data, Class: "User", Format: "yaml"}
	assert.NoError(t, cmd.run(ctx, &buf))

	var got map[string]any
	assert.NoError(t, yaml.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, 4, len(got))
	assert.Equal(t, "Tokyo", got["city"])
	assert.Equal(t, true, got["adult"])
}

func TestEvalErrors(t *testing.T) {
	ctx, data := setup(t)

	var buf bytes.Buffer

	err := (&EvalCmd{Data: data, Class: "User", Field: []string{"missing"}}).run(ctx, &buf)
	assert.IsError(t, err, ErrUnknownProperty)

	err = (&EvalCmd{Data: data, Class: "User", Format: "xml"}).run(ctx, &buf)
	assert.IsError(t, err, ErrUnknownFormat)

	err = (&EvalCmd{Data: data, Class: "Nobody"}).run(ctx, &buf)
	assert.Error(t, err)
}

func TestGet(t *testing.T) {
	ctx, data := setup(t)

	var buf bytes.Buffer

	assert.NoError(t, (&GetCmd{Data: data, Paths: []string{"address.city"}}).run(ctx, &buf))
	assert.Equal(t, "Tokyo\n", buf.String())

	buf.Reset()
	assert.NoError(t, (&GetCmd{Data: data, Paths: []string{"address.city", "address.zip", "tags.length"}}).run(ctx, &buf))
	assert.Equal(t, "address.city: Tokyo\naddress.zip: null\ntags.length: 2\n", buf.String())

	err := (&GetCmd{Data: data, Paths: []string{"address..city"}}).run(ctx, &buf)
	assert.Error(t, err)
}

func TestSet(t *testing.T) {
	ctx, data := setup(t)

	var buf bytes.Buffer

	assert.NoError(t, (&SetCmd{Data: data, Path: "address.city", Value: "Osaka"}).run(ctx, &buf))

	var doc map[string]any
	assert.NoError(t, yaml.Unmarshal(buf.Bytes(), &doc))
	assert.Equal(t, "Osaka", doc["address"].(map[string]any)["city"])

	// the file is untouched without -w
	loaded, err := loadDocument(data)
	assert.NoError(t, err)
	assert.Equal(t, "Tokyo", loaded["address"].(map[string]any)["city"])
}

func TestSetWrite(t *testing.T) {
	ctx, data := setup(t)

	var buf bytes.Buffer

	assert.NoError(t, (&SetCmd{Data: data, Path: "nick", Value: "neo", Write: true}).run(ctx, &buf))
	assert.Equal(t, "", buf.String())

	loaded, err := loadDocument(data)
	assert.NoError(t, err)
	assert.Equal(t, "neo", loaded["nick"])
}

func TestSetMissingContainer(t *testing.T) {
	ctx, data := setup(t)

	var buf bytes.Buffer

	err := (&SetCmd{Data: data, Path: "profile.bio", Value: "x"}).run(ctx, &buf)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	ctx, _ := setup(t)
	ctx.Quiet = false
	ctx.Verbose = true

	var buf bytes.Buffer

	assert.NoError(t, (&ValidateCmd{}).run(ctx, &buf))
	assert.Contains(t, buf.String(), "✓ User (4 properties)")
	assert.Contains(t, buf.String(), "    adult [ro]")
	assert.Contains(t, buf.String(), "    city [rw]")
}

func TestLoadDocumentRejectsList(t *testing.T) {
	dir := testhelper.WriteFiles(t, map[string]string{"list.yaml": "- a\n- b\n"})

	_, err := loadDocument(filepath.Join(dir, "list.yaml"))
	assert.IsError(t, err, ErrDocumentNotMap)
}

func TestParseScalar(t *testing.T) {
	assert.Equal(t, any("hello"), parseScalar("hello"))
	assert.Equal(t, any(true), parseScalar("true"))
	assert.Equal(t, any(nil), parseScalar("null"))
}
