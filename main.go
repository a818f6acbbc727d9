package main

import (
	"github.com/joho/godotenv"

	"github.com/shouni/go-storyboard-kit/cmd"
)

// main はアプリケーションの唯一のエントリーポイントなのだ！
// .env があれば読み込んでから、コマンドライン解析を cmd パッケージに委ねるのだよ。
func main() {
	// .env が無くてもエラーにはしないのだ（本番は環境変数で注入される想定）
	_ = godotenv.Load()

	cmd.Execute()
}
