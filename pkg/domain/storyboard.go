package domain

// ScriptDocument はAIモデルから返される台本全体の構造です。
type ScriptDocument struct {
	Title  string        `json:"title"`
	Frames []SceneScript `json:"frames"`
}

// SceneScript はCMの1シーン分の台本です。
// 各フィールドはAIの生成結果をそのまま信頼し、再導出はしません。
type SceneScript struct {
	SceneNumber      int    `json:"sceneNumber"`
	Timestamp        string `json:"timestamp"`
	SceneDescription string `json:"sceneDescription"`
	Dialogue         string `json:"dialogue"`
	CameraWork       string `json:"cameraWork"`
	Sound            string `json:"sound"`
	DirectionNotes   string `json:"directionNotes"`

	// ImagePrompt はこのシーンのイラストを生成するための描画指示。
	// 画像生成フェーズへの入力となるため、台本と同時に原子的に生成されるのだ。
	ImagePrompt string `json:"imagePrompt"`
}

// ImagePrompts は全シーンの描画指示を台本の並び順のまま取り出します。
func (d ScriptDocument) ImagePrompts() []string {
	prompts := make([]string, 0, len(d.Frames))
	for _, f := range d.Frames {
		prompts = append(prompts, f.ImagePrompt)
	}
	return prompts
}

// StoryboardFrame は台本の1シーンに生成済みイラストを紐づけた最終フレームです。
// ImageURL は data URL で、生成に失敗したシーンでは空文字列になります。
type StoryboardFrame struct {
	SceneNumber      int    `json:"sceneNumber"`
	Timestamp        string `json:"timestamp"`
	ImageURL         string `json:"imageUrl"`
	SceneDescription string `json:"sceneDescription"`
	Dialogue         string `json:"dialogue"`
	CameraWork       string `json:"cameraWork"`
	Sound            string `json:"sound"`
	DirectionNotes   string `json:"directionNotes"`
}

// StoryboardDocument は1回の生成リクエストの最終成果物です。生成後は変更されません。
type StoryboardDocument struct {
	Title       string            `json:"title"`
	ProductName string            `json:"productName"`
	Duration    string            `json:"duration"`
	TotalFrames int               `json:"totalFrames"`
	Frames      []StoryboardFrame `json:"frames"`
}

// AssembleStoryboard は台本と生成済み画像をシーン番号の並びのままマージする純粋関数なのだ。
// images[i] が frames[i] に対応するという添字の一致が絶対条件で、
// 並べ替えもフィルタリングも行わない。画像が欠けたシーンも空のURLでフレームを残すため、
// シーンとフレームの対応関係は決して崩れないのだよ。
func AssembleStoryboard(brief CreativeBrief, script ScriptDocument, images []string) StoryboardDocument {
	frames := make([]StoryboardFrame, len(script.Frames))
	for i, scene := range script.Frames {
		imageURL := ""
		if i < len(images) {
			imageURL = images[i]
		}
		frames[i] = StoryboardFrame{
			SceneNumber:      scene.SceneNumber,
			Timestamp:        scene.Timestamp,
			ImageURL:         imageURL,
			SceneDescription: scene.SceneDescription,
			Dialogue:         scene.Dialogue,
			CameraWork:       scene.CameraWork,
			Sound:            scene.Sound,
			DirectionNotes:   scene.DirectionNotes,
		}
	}

	return StoryboardDocument{
		Title:       script.Title,
		ProductName: brief.ProductName,
		Duration:    brief.DurationLabel(),
		TotalFrames: len(frames),
		Frames:      frames,
	}
}
