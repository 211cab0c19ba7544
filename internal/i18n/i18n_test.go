package i18n

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNormalizeLocale(t *testing.T) {
	require.Equal(t, LocaleEnglish, NormalizeLocale("en"))
	require.Equal(t, LocaleJapanese, NormalizeLocale(" JA "))
	require.Equal(t, DefaultLocale, NormalizeLocale("fr"))
	require.Equal(t, DefaultLocale, NormalizeLocale(""))
}

func TestSupportedLocale(t *testing.T) {
	require.True(t, SupportedLocale("en"))
	require.True(t, SupportedLocale("ja"))
	require.False(t, SupportedLocale("fr"))
	require.False(t, SupportedLocale(""))
}

func TestTranslatorResolvesLocaleCatalog(t *testing.T) {
	translator := NewTranslator(LocaleJapanese)

	require.Equal(t, "ダッシュボード", translator.T("dashboard"))
	require.Equal(t, LocaleJapanese, translator.Locale())
}

func TestTranslatorFallsBackToEnglishThenKey(t *testing.T) {
	translator := NewTranslator(LocaleJapanese)

	require.Equal(t, translator.T("not-a-real-key"), "not-a-real-key")

	english := NewTranslator(LocaleEnglish)
	require.Equal(t, "Dashboard", english.T("dashboard"))
}

func TestTranslatorUnknownLocaleDegradesToDefault(t *testing.T) {
	translator := NewTranslator("fr")

	require.Equal(t, DefaultLocale, translator.Locale())
	require.Equal(t, "Dashboard", translator.T("dashboard"))
}

func TestCatalogsCoverIdenticalKeys(t *testing.T) {
	englishCatalog := NewTranslator(LocaleEnglish).Catalog()
	japaneseCatalog := NewTranslator(LocaleJapanese).Catalog()

	for key := range englishCatalog {
		require.Contains(t, japaneseCatalog, key)
	}
	for key := range japaneseCatalog {
		require.Contains(t, englishCatalog, key)
	}
}

func TestSupportedLocalesDefaultFirst(t *testing.T) {
	require.Equal(t, []string{LocaleEnglish, LocaleJapanese}, SupportedLocales())
}
