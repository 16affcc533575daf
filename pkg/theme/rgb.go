package theme

import (
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// RGB は 8bit ずつの色です。
type RGB struct {
	R, G, B uint8
}

// Hex は "4472C4" 形式の16進表記を返します。
func (c RGB) Hex() string {
	return fmt.Sprintf("%02X%02X%02X", c.R, c.G, c.B)
}

// ParseHex は "#4472C4" や "4472C4" を RGB に変換します。
func ParseHex(s string) (RGB, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(s) != 6 {
		return RGB{}, fmt.Errorf("色は6桁の16進数で指定してください: %q", s)
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return RGB{}, fmt.Errorf("色の解析に失敗しました %q: %w", s, err)
	}
	return RGB{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v)}, nil
}

// UnmarshalYAML は [r, g, b] の配列と "#RRGGBB" の文字列の両方を受け付けます。
func (c *RGB) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		v, err := ParseHex(node.Value)
		if err != nil {
			return err
		}
		*c = v
		return nil
	case yaml.SequenceNode:
		var parts []int
		if err := node.Decode(&parts); err != nil {
			return fmt.Errorf("色の配列を解析できません: %w", err)
		}
		if len(parts) != 3 {
			return fmt.Errorf("色の配列は3要素が必要です (行 %d)", node.Line)
		}
		for _, p := range parts {
			if p < 0 || p > 255 {
				return fmt.Errorf("色の値は0から255の範囲です: %d (行 %d)", p, node.Line)
			}
		}
		*c = RGB{R: uint8(parts[0]), G: uint8(parts[1]), B: uint8(parts[2])}
		return nil
	default:
		return fmt.Errorf("色の形式が不正です (行 %d)", node.Line)
	}
}

// MarshalYAML は "#RRGGBB" 形式で書き出します。
func (c RGB) MarshalYAML() (any, error) {
	return "#" + c.Hex(), nil
}
