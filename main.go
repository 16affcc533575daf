package main

import (
	"github.com/shouni/go-slide-kit/cmd"
)

// main は ap-slide-go を起動するのだ。
// トピックの受け取りからデッキの保存までは cmd.Execute が受け持ち、終了コードもそこで決めるのだ。
func main() {
	cmd.Execute()
}
