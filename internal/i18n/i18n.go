package i18n

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

const (
	LangEN = "en"
	LangRU = "ru"
)

type Manager struct {
	defaultLanguage string
	locales         map[string]map[string]string
	supported       []string
}

func NewManager(defaultLanguage string, localesDir string) (*Manager, error) {
	entries, err := os.ReadDir(localesDir)
	if err != nil {
		return nil, fmt.Errorf("read locales dir: %w", err)
	}

	manager := &Manager{locales: map[string]map[string]string{}}
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".json" {
			continue
		}

		language := strings.ToLower(strings.TrimSuffix(entry.Name(), filepath.Ext(entry.Name())))
		content, err := os.ReadFile(filepath.Join(localesDir, entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("read locale %s: %w", language, err)
		}

		messages := map[string]string{}
		if err := json.Unmarshal(content, &messages); err != nil {
			return nil, fmt.Errorf("parse locale %s: %w", language, err)
		}
		if len(messages) == 0 {
			return nil, fmt.Errorf("locale %s is empty", language)
		}

		manager.locales[language] = messages
		manager.supported = append(manager.supported, language)
	}

	if _, ok := manager.locales[LangEN]; !ok {
		return nil, fmt.Errorf("required locale %q missing in %s", LangEN, localesDir)
	}

	sort.Strings(manager.supported)
	manager.defaultLanguage = LangEN
	manager.defaultLanguage = manager.NormalizeLanguage(defaultLanguage)
	return manager, nil
}

func (manager *Manager) DefaultLanguage() string {
	return manager.defaultLanguage
}

func (manager *Manager) SupportedLanguages() []string {
	return append([]string(nil), manager.supported...)
}

func (manager *Manager) NormalizeLanguage(raw string) string {
	language := normalizeLanguageTag(raw)
	if _, ok := manager.locales[language]; ok && language != "" {
		return language
	}
	return manager.defaultLanguage
}

func (manager *Manager) DetectFromAcceptLanguage(raw string) string {
	for _, part := range strings.Split(raw, ",") {
		token := strings.TrimSpace(strings.Split(part, ";")[0])
		language := normalizeLanguageTag(token)
		if _, ok := manager.locales[language]; ok && language != "" {
			return language
		}
	}
	return manager.defaultLanguage
}

// Messages returns the catalog for language layered over the default one, so
// a missing translation falls back instead of showing a raw key.
func (manager *Manager) Messages(language string) map[string]string {
	defaults := manager.locales[manager.defaultLanguage]
	target := manager.locales[manager.NormalizeLanguage(language)]

	result := make(map[string]string, len(defaults)+len(target))
	for key, value := range defaults {
		result[key] = value
	}
	for key, value := range target {
		result[key] = value
	}
	return result
}

func (manager *Manager) Translate(language string, key string) string {
	if value, ok := manager.Messages(language)[key]; ok && strings.TrimSpace(value) != "" {
		return value
	}
	return key
}

func normalizeLanguageTag(raw string) string {
	language := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(raw)), "_", "-")
	if separator := strings.Index(language, "-"); separator >= 0 {
		language = language[:separator]
	}
	return language
}
