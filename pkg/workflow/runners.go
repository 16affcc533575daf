package workflow

import (
	"github.com/shouni/go-slide-kit/pkg/runner"
)

// BuildOutlineRunner は、構成案の生成を担当する Runner を作成します。
func (m *Manager) BuildOutlineRunner() (OutlineRunner, error) {
	return runner.NewSlideOutlineRunner(m.cfg, m.prompts, m.generator), nil
}

// BuildContentRunner は、各スライドの詳細化を担当する Runner を作成します。
func (m *Manager) BuildContentRunner() (ContentRunner, error) {
	return runner.NewSlideContentRunner(m.cfg, m.prompts, m.generator), nil
}

// BuildPublishRunner は、デッキの組み立てと保存を担当する Runner を作成します。
func (m *Manager) BuildPublishRunner() (PublishRunner, error) {
	return runner.NewDeckPublishRunner(m.theme, m.writer), nil
}
