package common

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

// HammingWeight counts the set bits of a measurement bitstring.
func HammingWeight(bits string) int {
	w := 0
	for _, b := range bits {
		if b == '1' {
			w++
		}
	}
	return w
}

// IsBitstring reports whether s consists only of '0' and '1'.
func IsBitstring(s string) bool {
	if len(s) == 0 {
		return false
	}
	for _, b := range s {
		if b != '0' && b != '1' {
			return false
		}
	}
	return true
}

// For ad hoc JSON printing for logging
func PlainJsonString(jsonInput string) string {
	if jsonInput[0] == '"' {
		jsonInput = jsonInput[1:]
	}
	if jsonInput[len(jsonInput)-1] == '"' {
		jsonInput = jsonInput[:len(jsonInput)-1]
	}
	var out []byte
	for i := 0; i < len(jsonInput); i++ {
		switch jsonInput[i] {
		case '\n', ' ':
		case '\\':
			if i+1 < len(jsonInput) && jsonInput[i+1] == '"' {
				out = append(out, '"')
				i++
			} else {
				out = append(out, jsonInput[i])
			}
		default:
			out = append(out, jsonInput[i])
		}
	}
	return string(out)
}

func IsDirWritable(dirPath string) error {
	info, err := os.Stat(dirPath)
	if os.IsNotExist(err) {
		return fmt.Errorf("directory does not exist: %s", dirPath)
	}
	if err != nil {
		return err
	}

	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", dirPath)
	}

	tempFile, err := os.CreateTemp(dirPath, "test-write-*.tmp")
	if err != nil {
		return fmt.Errorf("write permission denied for directory: %s", dirPath)
	}
	fileName := tempFile.Name()
	tempFile.Close()

	if err := os.Remove(fileName); err != nil {
		return fmt.Errorf("failed to remove temporary file: %s", err)
	}

	return nil
}

func ReadSettingsFile(settingsPath string) (string, error) {
	bytes, err := os.ReadFile(settingsPath)
	if err != nil {
		zap.L().Error(fmt.Sprintf("failed to read settings file/path:%s/reason:%s",
			settingsPath, err))
		if absolutePath, err := filepath.Abs(settingsPath); err != nil {
			zap.L().Error(fmt.Sprintf("failed to get absolute path of %s/reason:%s",
				settingsPath, err))
		} else {
			zap.L().Debug(fmt.Sprintf("absolute path:%s", absolutePath))
		}
		return "", err
	}
	return string(bytes), nil
}
