package envexport

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/envexport/secrets-to-env/logger"
)

func finalKeys(entries map[string]Entry) []string {
	keys := make([]string, 0, len(entries))
	for k := range entries {
		keys = append(keys, k)
	}
	return keys
}

func TestTransformPassesEntriesThroughUnchanged(t *testing.T) {
	t.Parallel()

	raw := map[string]string{
		"MY_SECRET_1": "VALUE_1",
		"MY_SECRET_2": "VALUE_2",
	}

	entries, err := Transform(raw, SourceSecret, TransformConfig{}, logger.Discard)
	require.NoError(t, err)

	want := map[string]Entry{
		"MY_SECRET_1": {FinalKey: "MY_SECRET_1", Value: "VALUE_1", Source: SourceSecret, OriginalKey: "MY_SECRET_1"},
		"MY_SECRET_2": {FinalKey: "MY_SECRET_2", Value: "VALUE_2", Source: SourceSecret, OriginalKey: "MY_SECRET_2"},
	}
	if diff := cmp.Diff(want, entries); diff != "" {
		t.Errorf("Transform diff (-want +got):\n%s", diff)
	}
}

func TestTransformIncludeFilter(t *testing.T) {
	t.Parallel()

	raw := map[string]string{
		"DB_HOST":   "localhost",
		"DB_PORT":   "5432",
		"API_TOKEN": "tok",
	}

	entries, err := Transform(raw, SourceVar, TransformConfig{Include: []string{"^DB_"}}, logger.Discard)
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{"DB_HOST", "DB_PORT"}, finalKeys(entries))
}

func TestTransformNilIncludeMeansNoFilter(t *testing.T) {
	t.Parallel()

	raw := map[string]string{"A": "1", "B": "2"}

	entries, err := Transform(raw, SourceVar, TransformConfig{Include: nil}, logger.Discard)
	require.NoError(t, err)

	assert.Len(t, entries, 2)
}

func TestTransformExcludeFilter(t *testing.T) {
	t.Parallel()

	raw := map[string]string{
		"KEEP_ME": "yes",
		"DROP_ME": "no",
	}

	entries, err := Transform(raw, SourceSecret, TransformConfig{Exclude: []string{"^DROP_"}}, logger.Discard)
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{"KEEP_ME"}, finalKeys(entries))
}

func TestTransformReservedNameAlwaysExcluded(t *testing.T) {
	t.Parallel()

	raw := map[string]string{
		"github_token": "ghs_xxx",
		"MY_SECRET":    "v",
	}

	// No caller-supplied exclude list at all
	entries, err := Transform(raw, SourceSecret, TransformConfig{}, logger.Discard)
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{"MY_SECRET"}, finalKeys(entries))
}

func TestTransformRemovePrefix(t *testing.T) {
	t.Parallel()

	raw := map[string]string{"MY_PREFIXED_SECRET_1": "V1"}

	entries, err := Transform(raw, SourceSecret, TransformConfig{RemovePrefix: "MY_PREFIXED_"}, logger.Discard)
	require.NoError(t, err)

	require.Contains(t, entries, "SECRET_1")
	assert.Equal(t, "MY_PREFIXED_SECRET_1", entries["SECRET_1"].OriginalKey)
}

func TestTransformRemovePrefixIsCaseInsensitive(t *testing.T) {
	t.Parallel()

	raw := map[string]string{"my_prefixed_SECRET": "v"}

	entries, err := Transform(raw, SourceSecret, TransformConfig{RemovePrefix: "MY_PREFIXED_"}, logger.Discard)
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{"SECRET"}, finalKeys(entries))
}

func TestTransformRemovePrefixLeavesNonMatchingKeys(t *testing.T) {
	t.Parallel()

	raw := map[string]string{"OTHER_KEY": "v"}

	entries, err := Transform(raw, SourceSecret, TransformConfig{RemovePrefix: "MY_PREFIXED_"}, logger.Discard)
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{"OTHER_KEY"}, finalKeys(entries))
}

func TestTransformPrefixRoundTrip(t *testing.T) {
	t.Parallel()

	// remove_prefix=P then prefix=Q yields Q + K[len(P):]
	raw := map[string]string{"APP_DB_URL": "postgres://"}

	entries, err := Transform(raw, SourceSecret, TransformConfig{
		RemovePrefix: "APP_",
		Prefix:       "STAGING_",
	}, logger.Discard)
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{"STAGING_DB_URL"}, finalKeys(entries))
}

func TestTransformConvert(t *testing.T) {
	t.Parallel()

	tests := []struct {
		convert string
		key     string
		want    string
	}{
		{convert: "lower", key: "MY_SECRET", want: "my_secret"},
		{convert: "upper", key: "my_secret", want: "MY_SECRET"},
		{convert: "camel", key: "MY_SECRET", want: "mySecret"},
		{convert: "constant", key: "my_secret", want: "MY_SECRET"},
		{convert: "pascal", key: "my_secret", want: "MySecret"},
		{convert: "snake", key: "MySecret", want: "my_secret"},
	}

	for _, test := range tests {
		t.Run(test.convert, func(t *testing.T) {
			t.Parallel()

			entries, err := Transform(
				map[string]string{test.key: "v"},
				SourceSecret,
				TransformConfig{Convert: test.convert, ConvertPrefix: true},
				logger.Discard,
			)
			require.NoError(t, err)

			assert.ElementsMatch(t, []string{test.want}, finalKeys(entries))
		})
	}
}

func TestTransformConvertPrefixFalseKeepsPrefixCasing(t *testing.T) {
	t.Parallel()

	raw := map[string]string{"DB_URL": "postgres://"}

	entries, err := Transform(raw, SourceSecret, TransformConfig{
		Prefix:        "MyApp_",
		Convert:       "lower",
		ConvertPrefix: false,
	}, logger.Discard)
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{"MyApp_db_url"}, finalKeys(entries))
}

func TestTransformConvertPrefixTrueConvertsWholeKey(t *testing.T) {
	t.Parallel()

	raw := map[string]string{"DB_URL": "postgres://"}

	entries, err := Transform(raw, SourceSecret, TransformConfig{
		Prefix:        "MyApp_",
		Convert:       "lower",
		ConvertPrefix: true,
	}, logger.Discard)
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{"myapp_db_url"}, finalKeys(entries))
}

func TestTransformUnknownConvertModeFailsEagerly(t *testing.T) {
	t.Parallel()

	// Even an empty input fails when the convert mode is bogus
	_, err := Transform(map[string]string{}, SourceSecret, TransformConfig{Convert: "shouty"}, logger.Discard)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown convert value "shouty"`)
}

func TestTransformBadPatternFails(t *testing.T) {
	t.Parallel()

	_, err := Transform(map[string]string{"A": "1"}, SourceSecret, TransformConfig{Include: []string{"("}}, logger.Discard)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "compiling include pattern")

	_, err = Transform(map[string]string{"A": "1"}, SourceSecret, TransformConfig{Exclude: []string{"("}}, logger.Discard)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "compiling exclude pattern")
}

func TestTransformLogsPrefixRemoval(t *testing.T) {
	t.Parallel()

	buf := logger.NewBuffer()
	_, err := Transform(map[string]string{"PRE_KEY": "v"}, SourceSecret, TransformConfig{RemovePrefix: "PRE_"}, buf)
	require.NoError(t, err)

	assert.Contains(t, buf.Messages, `[debug] Removed prefix "PRE_" from secret "PRE_KEY"`)
}
