package theme

// Alignment は段落の水平位置です。
type Alignment int

const (
	AlignInherit Alignment = iota
	AlignLeft
	AlignCenter
	AlignRight
)

// AutoFit はテキスト枠からあふれたときの扱いです。
type AutoFit int

const (
	AutoFitNone AutoFit = iota
	// AutoFitShrink は枠に収まるよう文字を縮小します。
	AutoFitShrink
)

// Margins はテキスト枠の内側余白（インチ）です。
type Margins struct {
	Left, Right, Top, Bottom float64
}

// UniformMargins は四辺同じ余白を返します。
func UniformMargins(in float64) *Margins {
	return &Margins{Left: in, Right: in, Top: in, Bottom: in}
}

// Spacing は段落前後の間隔（ポイント）です。
type Spacing struct {
	Before, After float64
}

// Formatting はプレースホルダー1つに適用する書式です。
// nil のフィールドはバックエンドの既定値のままにします。
type Formatting struct {
	Font  string
	Size  int
	Color RGB
	Bold  bool
	Align Alignment

	Margins  *Margins
	WordWrap bool
	AutoFit  AutoFit

	// Spacing と Level は箇条書きの段落にのみ使われます。
	Spacing *Spacing
	Level   int
}

// Role はプレースホルダーに入るテキストの役割です。
type Role string

const (
	RoleTitle    Role = "title"
	RoleSubtitle Role = "subtitle"
	RoleBody     Role = "body"
	RoleBullets  Role = "bullets"
)
