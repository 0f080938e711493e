// Package assets отдает статические ресурсы презентации: SVG-иконки, шрифты и фоновые изображения.
// Иконки встроены в бинарник. Шрифты и фоны берутся из каталога ресурсов, если он задан и файл в нем есть,
// иначе используются встроенные шрифты Go и фоны, сгенерированные в памяти.
package assets

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gomedium"
	"golang.org/x/image/font/gofont/goregular"

	"presentation-service-go/internal/pkg/logger"
)

//go:embed icons/*.svg
var icons embed.FS

var (
	ErrIconNotFound    = errors.New("icon not found")
	ErrPatternNotFound = errors.New("pattern not found")
)

// Weight начертание шрифта
type Weight string

const (
	UltraThin Weight = "UltraThin"
	Thin      Weight = "Thin"
	Regular   Weight = "Regular"
	Bold      Weight = "Bold"
	Black     Weight = "Black"
)

// Weights все начертания в порядке регистрации
var Weights = []Weight{UltraThin, Thin, Regular, Bold, Black}

var fontFiles = map[Weight]string{
	UltraThin: "MuseoSansCyrl-100.ttf",
	Thin:      "MuseoSansCyrl-300.ttf",
	Regular:   "MuseoSansCyrl-500.ttf",
	Bold:      "MuseoSansCyrl-700.ttf",
	Black:     "MuseoSansCyrl-900.ttf",
}

var fallbackFonts = map[Weight][]byte{
	UltraThin: goregular.TTF,
	Thin:      goregular.TTF,
	Regular:   gomedium.TTF,
	Bold:      gobold.TTF,
	Black:     gobold.TTF,
}

// Library источник ресурсов. Безопасен для конкурентного использования
type Library struct {
	dir      string
	logger   *zap.Logger
	patterns sync.Map
	fonts    sync.Map
}

// New создает библиотеку ресурсов. dir может быть пустым
func New(dir string) *Library {
	return &Library{
		dir:    dir,
		logger: logger.Component("assets"),
	}
}

// Icon возвращает SVG-иконку по имени без расширения
func (l *Library) Icon(name string) ([]byte, error) {
	data, err := icons.ReadFile("icons/" + name + ".svg")
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrIconNotFound, name)
	}
	return data, nil
}

// IconNames имена всех встроенных иконок
func (l *Library) IconNames() []string {
	entries, err := fs.ReadDir(icons, "icons")
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, strings.TrimSuffix(e.Name(), ".svg"))
	}
	sort.Strings(names)
	return names
}

// CharacteristicIcon имя иконки характеристики здания
func CharacteristicIcon(key string) string {
	return "ch_" + key
}

// InfrastructureIcon имя иконки группы инфраструктуры
func InfrastructureIcon(group string) string {
	return "inf_" + group
}

// ParamIcon имя иконки параметра помещения
func ParamIcon(param string) string {
	switch param {
	case "floorHeight":
		return "param_floor_height"
	default:
		return "param_" + param
	}
}

// Font возвращает TTF-шрифт начертания. Файл из каталога ресурсов имеет приоритет над встроенным шрифтом
func (l *Library) Font(weight Weight) []byte {
	if cached, ok := l.fonts.Load(weight); ok {
		return cached.([]byte)
	}

	data := fallbackFonts[weight]
	if data == nil {
		data = goregular.TTF
	}
	if file, ok := fontFiles[weight]; ok {
		if custom, found := l.readFile(filepath.Join("fonts", file)); found {
			data = custom
		}
	}

	l.fonts.Store(weight, data)
	return data
}

func (l *Library) readFile(rel string) ([]byte, bool) {
	if l.dir == "" {
		return nil, false
	}
	path := filepath.Join(l.dir, rel)
	data, err := os.ReadFile(path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			l.logger.Warn("Failed to read asset", zap.String("path", path), zap.Error(err))
		}
		return nil, false
	}
	return data, true
}
