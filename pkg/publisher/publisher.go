package publisher

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"path"

	"github.com/shouni/go-storyboard-kit/pkg/domain"

	"github.com/shouni/go-utils/urlpath"
)

// OutputWriter はデータを外部ストレージに保存するためのインターフェースです。
// remoteio.OutputWriter（ローカル/GCS両対応）がそのまま実装を満たします。
type OutputWriter interface {
	Write(ctx context.Context, path string, data io.Reader, mimeType string) error
}

// Options はパブリッシュ動作を制御する設定項目です。
type Options struct {
	OutputDir string // ローカルディレクトリ or gs://...
}

// PublishResult はパブリッシュ処理の結果として生成されたファイルの情報を保持します。
type PublishResult struct {
	StoryboardPath string   // 保存された storyboard.json のパス
	ImagePaths     []string // 保存された全フレーム画像のパスリスト
}

const (
	defaultStoryboardName = "storyboard.json"
	defaultScriptName     = "script.json"
	defaultImageDirName   = "images"
)

// StoryboardPublisher は成果物（絵コンテJSONとフレーム画像）の永続化を担います。
// HTTPサーバーの応答はメモリ上で完結するため、これを使うのはCLIモードだけなのだ。
type StoryboardPublisher struct {
	writer OutputWriter
}

// NewStoryboardPublisher は指定されたライターを持つ新しいインスタンスを生成して返します。
func NewStoryboardPublisher(writer OutputWriter) *StoryboardPublisher {
	return &StoryboardPublisher{writer: writer}
}

// Publish はフレーム画像の保存と絵コンテJSONの書き出しを一括して実行するのだ！
// 保存するJSONの imageUrl は data URL から相対パスに置き換える。
// 画像が生成できなかったフレームは imageUrl を空のまま残し、フレーム自体は削らないのだよ。
func (p *StoryboardPublisher) Publish(ctx context.Context, storyboard domain.StoryboardDocument, opts Options) (PublishResult, error) {
	result := PublishResult{}

	jsonPath, err := ResolveOutputPath(opts.OutputDir, defaultStoryboardName)
	if err != nil {
		return result, err
	}
	imgDir, err := ResolveOutputPath(opts.OutputDir, defaultImageDirName)
	if err != nil {
		return result, err
	}

	// 1. フレーム画像の保存（data URL をデコードして1枚ずつ書き出すのだ）
	saved := storyboard
	saved.Frames = make([]domain.StoryboardFrame, len(storyboard.Frames))
	copy(saved.Frames, storyboard.Frames)

	for i := range saved.Frames {
		if saved.Frames[i].ImageURL == "" {
			continue
		}
		imgPath, err := p.saveFrameImage(ctx, imgDir, i+1, saved.Frames[i].ImageURL)
		if err != nil {
			return result, fmt.Errorf("フレーム%dの画像の書き込みに失敗しました: %w", i+1, err)
		}
		result.ImagePaths = append(result.ImagePaths, imgPath)
		saved.Frames[i].ImageURL = path.Join(defaultImageDirName, path.Base(imgPath))
	}

	// 2. 絵コンテJSONの書き出し
	if err := p.writeJSON(ctx, jsonPath, saved); err != nil {
		return result, err
	}
	result.StoryboardPath = jsonPath

	slog.Info("成果物を保存したのだ", "storyboard", jsonPath, "images", len(result.ImagePaths))
	return result, nil
}

// PublishScript は台本JSONのみを書き出し、保存先のパスを返すのだ。
func (p *StoryboardPublisher) PublishScript(ctx context.Context, script domain.ScriptDocument, opts Options) (string, error) {
	jsonPath, err := ResolveOutputPath(opts.OutputDir, defaultScriptName)
	if err != nil {
		return "", err
	}
	if err := p.writeJSON(ctx, jsonPath, script); err != nil {
		return "", err
	}
	return jsonPath, nil
}

// saveFrameImage は1フレーム分の data URL をデコードして画像ファイルとして保存します。
func (p *StoryboardPublisher) saveFrameImage(ctx context.Context, imgDir string, sceneNumber int, dataURL string) (string, error) {
	ref := domain.ReferenceImage{Base64: dataURL}
	mime, b64, ok := ref.DecodeDataURL()
	if !ok {
		return "", fmt.Errorf("画像データがdata URL形式ではありません")
	}

	data, err := base64.StdEncoding.DecodeString(b64)
	if err != nil {
		return "", fmt.Errorf("base64のデコードに失敗しました: %w", err)
	}

	name := fmt.Sprintf("scene_%02d.%s", sceneNumber, extensionFor(mime))
	imgPath, err := ResolveOutputPath(imgDir, name)
	if err != nil {
		return "", err
	}
	if err := p.writer.Write(ctx, imgPath, bytes.NewReader(data), mime); err != nil {
		return "", err
	}
	return imgPath, nil
}

func (p *StoryboardPublisher) writeJSON(ctx context.Context, jsonPath string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("JSONのエンコードに失敗しました: %w", err)
	}
	if err := p.writer.Write(ctx, jsonPath, bytes.NewReader(data), "application/json; charset=utf-8"); err != nil {
		return fmt.Errorf("JSONファイルの書き込みに失敗しました: %w", err)
	}
	return nil
}

// extensionFor はMIMEタイプから保存用の拡張子を決めるのだ。
func extensionFor(mime string) string {
	switch mime {
	case "image/jpeg":
		return "jpg"
	case "image/webp":
		return "webp"
	case "image/gif":
		return "gif"
	default:
		return "png"
	}
}

// ResolveOutputPath は、ベースとなるディレクトリパスとファイル名から、
// GCS/ローカルを考慮した最終的な出力パスを生成します。
func ResolveOutputPath(baseDir, fileName string) (string, error) {
	return urlpath.ResolvePath(baseDir, fileName)
}
