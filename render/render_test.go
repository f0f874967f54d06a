package render

import (
	"strings"
	"testing"

	sharedConfig "github.com/Xushengqwer/go-common/config"
	"github.com/Xushengqwer/go-common/core"

	"github.com/Xushengqwer/board_service/config"
	"github.com/Xushengqwer/board_service/models/entities"
)

func testLogger(t *testing.T) *core.ZapLogger {
	t.Helper()
	logger, err := core.NewZapLogger(sharedConfig.ZapConfig{})
	if err != nil {
		t.Fatalf("创建测试日志记录器失败: %v", err)
	}
	return logger
}

func testRenderer(t *testing.T) *Renderer {
	t.Helper()
	return NewRenderer(config.RenderConfig{
		AllowedImageHosts: []string{"i.example.com", "*.imgur.com"},
	}, testLogger(t))
}

func threadWithText(text string) *entities.Post {
	return &entities.Post{
		ID:           100,
		Board:        "b",
		Email:        "user@example.com",
		Text:         text,
		MaxCommentID: 100,
		Score:        100,
	}
}

func TestRenderPostMarkdown(t *testing.T) {
	r := testRenderer(t)

	out := r.RenderPost(threadWithText("hello **world**"))
	if !strings.Contains(out.Html, "<strong>world</strong>") {
		t.Errorf("粗体标记未被渲染: %q", out.Html)
	}

	out = r.RenderPost(threadWithText("```\ncode block\n```"))
	if !strings.Contains(out.Html, "<pre>") || !strings.Contains(out.Html, "code block") {
		t.Errorf("围栏代码块未被渲染: %q", out.Html)
	}
}

func TestRenderPostStripsDangerousHTML(t *testing.T) {
	r := testRenderer(t)

	for _, text := range []string{
		"<script>alert(1)</script>hello",
		"before <img src=x onerror=alert(1)> after",
		"[click](javascript:alert(1))",
	} {
		out := r.RenderPost(threadWithText(text))
		// 原始 HTML 被转义为实体文本，不允许出现可执行的标签/协议形式
		if strings.Contains(out.Html, "<script") ||
			strings.Contains(out.Html, "<img") ||
			strings.Contains(out.Html, "javascript:") {
			t.Errorf("危险构造未被净化: 输入 %q 输出 %q", text, out.Html)
		}
	}
}

func TestRenderPostRawTextNeverLeaks(t *testing.T) {
	r := testRenderer(t)
	out := r.RenderPost(threadWithText("plain text"))
	if out.Html == "" {
		t.Fatal("正常文本不应渲染为空")
	}
	if !strings.Contains(out.Html, "plain text") {
		t.Errorf("正文内容丢失: %q", out.Html)
	}
}

func TestNormalizeImageAllowList(t *testing.T) {
	r := testRenderer(t)

	tests := []struct {
		name          string
		raw           string
		wantImage     string // 空串表示期望为 nil
		wantImageLink string
	}{
		{"精确匹配的主机", "https://i.example.com/a.png", "https://i.example.com/a.png", ""},
		{"通配匹配子域名", "https://cdn.imgur.com/a.png", "https://cdn.imgur.com/a.png", ""},
		{"通配匹配裸域名", "https://imgur.com/a.png", "https://imgur.com/a.png", ""},
		{"主机大小写不敏感", "https://I.EXAMPLE.COM/a.png", "https://I.EXAMPLE.COM/a.png", ""},
		{"名单外主机降级为链接", "https://evil.example.net/a.png", "", "https://evil.example.net/a.png"},
		{"相似后缀不得误判", "https://notimgur.com/a.png", "", "https://notimgur.com/a.png"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			post := threadWithText("x")
			post.Image = tt.raw
			out := r.RenderPost(post)

			if tt.wantImage == "" && out.Image != nil {
				t.Errorf("期望 image 为空，实际 %q", *out.Image)
			}
			if tt.wantImage != "" && (out.Image == nil || *out.Image != tt.wantImage) {
				t.Errorf("期望 image=%q，实际 %v", tt.wantImage, out.Image)
			}
			if tt.wantImageLink == "" && out.ImageLink != nil {
				t.Errorf("期望 image_link 为空，实际 %q", *out.ImageLink)
			}
			if tt.wantImageLink != "" && (out.ImageLink == nil || *out.ImageLink != tt.wantImageLink) {
				t.Errorf("期望 image_link=%q，实际 %v", tt.wantImageLink, out.ImageLink)
			}
		})
	}
}

func TestNormalizeImageFailClosed(t *testing.T) {
	r := testRenderer(t)

	// 无法安全解析的链接既不进 image 也不进 image_link
	for _, raw := range []string{
		"javascript:alert(1)",
		"ftp://example.com/a.png",
		"://bad",
		"/relative/path.png",
	} {
		post := threadWithText("x")
		post.Image = raw
		out := r.RenderPost(post)
		if out.Image != nil || out.ImageLink != nil {
			t.Errorf("输入 %q 应被整体丢弃, image=%v image_link=%v", raw, out.Image, out.ImageLink)
		}
	}
}

func TestRenderPostNoImage(t *testing.T) {
	r := testRenderer(t)
	out := r.RenderPost(threadWithText("x"))
	if out.Image != nil || out.ImageLink != nil {
		t.Error("无图片的帖子不应产生任何图片字段")
	}
}

func TestRenderPostVariantFields(t *testing.T) {
	r := testRenderer(t)

	thread := &entities.Post{
		ID:           100,
		Board:        "b",
		Email:        "user@example.com",
		Text:         "x",
		Sages:        1,
		MaxCommentID: 101,
		Score:        -49,
	}
	out := r.RenderPost(thread)
	if out.Parent != nil {
		t.Error("主题帖不应带 parent 字段")
	}
	if out.Sages == nil || *out.Sages != 1 {
		t.Errorf("主题帖 sages 字段错误: %v", out.Sages)
	}
	if out.MaxCommentID == nil || *out.MaxCommentID != 101 {
		t.Errorf("主题帖 max_comment_id 字段错误: %v", out.MaxCommentID)
	}
	if out.Score == nil || *out.Score != -49 {
		t.Errorf("主题帖 score 字段错误: %v", out.Score)
	}

	parentID := uint64(100)
	comment := &entities.Post{
		ID:       102,
		Board:    "b",
		ParentID: &parentID,
		Email:    "sage",
		Text:     "y",
	}
	out = r.RenderPost(comment)
	if out.Parent == nil || *out.Parent != 100 {
		t.Errorf("评论 parent 字段错误: %v", out.Parent)
	}
	if out.Sages != nil || out.MaxCommentID != nil || out.Score != nil {
		t.Error("评论不应带排序字段")
	}
}

// 同样的输入必须每次产生同样的输出。
func TestRenderPostDeterministic(t *testing.T) {
	r := testRenderer(t)
	post := threadWithText("# title\n\nsome **bold** text\n\n```go\nfunc main() {}\n```")
	post.Image = "https://cdn.imgur.com/a.png"

	first := r.RenderPost(post)
	for i := 0; i < 5; i++ {
		again := r.RenderPost(post)
		if again.Html != first.Html {
			t.Fatalf("第 %d 次渲染结果不一致", i+1)
		}
	}
}
