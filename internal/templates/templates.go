package templates

import (
	"embed"
)

//go:embed init/*.tmpl
var initTemplates embed.FS

// GetExampleSpec returns the starter spec config file content
func GetExampleSpec() (string, error) {
	content, err := initTemplates.ReadFile("init/example.cfg.tmpl")
	if err != nil {
		return "", err
	}
	return string(content), nil
}

// GetSettingsFile returns the starter classgen.yaml content
func GetSettingsFile() (string, error) {
	content, err := initTemplates.ReadFile("init/classgen.yaml.tmpl")
	if err != nil {
		return "", err
	}
	return string(content), nil
}
