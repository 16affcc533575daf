package publisher

import (
	"context"
	"io"

	"github.com/shouni/go-remote-io/pkg/remoteio"
)

// OutputWriter は完成した文書を保存先に書き出すためのインターフェースです。
// remoteio.OutputWriter はこれを満たすため、ローカル・GCS・S3 のいずれにも書き出せます。
type OutputWriter interface {
	Write(ctx context.Context, path string, r io.Reader, contentType string) error
}

var _ OutputWriter = (remoteio.OutputWriter)(nil)

// NewLocalWriter はクラウドのクライアントを持たない remoteio の Writer を返します。
// ローカルパスへの書き込み専用で、親ディレクトリが無ければ作成します。
// gs:// や s3:// への書き込みはクライアント未初期化のエラーになります。
func NewLocalWriter() remoteio.OutputWriter {
	return remoteio.NewUniversalIOWriter(nil, nil)
}
