package domain

// BulletPoint は文字列、または {point, details} の組のどちらかです。
type BulletPoint struct {
	Point   string
	Details string
	// Structured は元データがオブジェクトだったかを示します。
	Structured bool
}

// PlainBullet は文字列の箇条書きを作ります。
func PlainBullet(s string) BulletPoint {
	return BulletPoint{Point: s}
}

// StructuredBullet は {point, details} 形式の箇条書きを作ります。
func StructuredBullet(point, details string) BulletPoint {
	return BulletPoint{Point: point, Details: details, Structured: true}
}

// Text は表示用の文字列を返します。
// details が空でなく point と異なる場合のみ "point: details" に結合します。
// point が空の構造化エントリは ok=false になり、描画対象から外れます。
func (b BulletPoint) Text() (string, bool) {
	if !b.Structured {
		return b.Point, true
	}
	if b.Point == "" {
		return "", false
	}
	if b.Details != "" && b.Details != b.Point {
		return b.Point + ": " + b.Details, true
	}
	return b.Point, true
}
