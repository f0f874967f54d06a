package render

import (
	"bytes"
	"net/url"
	"strings"

	"github.com/Xushengqwer/go-common/core"
	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	goldmarkhtml "github.com/yuin/goldmark/renderer/html"
	"go.uber.org/zap"

	"github.com/Xushengqwer/board_service/config"
	"github.com/Xushengqwer/board_service/models/entities"
	"github.com/Xushengqwer/board_service/models/vo"
)

// Renderer 是内容净化管线：把存储中的原始帖子转换成可以安全下发的 VO。
// - 只在读路径使用，写路径持久化原文，渲染结果永不落库（缓存除外）。
// - 同样的输入与白名单配置必然产生同样的输出（纯函数），
//   所有读端点共用这一个转换阶段，不允许各自复制净化逻辑。
// - 失败策略是 fail-closed：任何解析/渲染问题都降级为安全的空渲染并记日志，
//   绝不把未净化的内容放行，也绝不让单个帖子的渲染失败变成请求失败。
type Renderer struct {
	logger        *core.ZapLogger
	markdown      goldmark.Markdown
	policy        *bluemonday.Policy
	exactHosts    map[string]struct{} // 精确匹配的图片主机
	wildcardHosts []string            // "*.imgur.com" 形式去掉 "*." 后的后缀
}

// NewRenderer 构造渲染器。
// - 图片主机白名单来自外部配置，进程生命周期内不可变。
// - HTML 白名单是固定的"安全子集"：段落/强调/链接/列表/代码/引用，
//   外加锚点与用于代码高亮的通用块容器；其余标签（包括一切可执行脚本的构造）全部剥除。
func NewRenderer(cfg config.RenderConfig, logger *core.ZapLogger) *Renderer {
	markdown := goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithRendererOptions(
			// 帖子正文按聊天习惯换行，单个换行直接成 <br>
			goldmarkhtml.WithHardWraps(),
		),
	)

	policy := bluemonday.NewPolicy()
	policy.AllowElements(
		"p", "br", "em", "strong", "ul", "ol", "li",
		"code", "pre", "blockquote", "div",
	)
	policy.AllowAttrs("href").OnElements("a")
	policy.AllowAttrs("class").OnElements("code", "pre", "div")
	policy.AllowURLSchemes("http", "https", "mailto")
	policy.RequireParseableURLs(true)

	exact := make(map[string]struct{})
	var wildcards []string
	for _, pattern := range cfg.AllowedImageHosts {
		pattern = strings.ToLower(strings.TrimSpace(pattern))
		if pattern == "" {
			continue
		}
		if suffix, ok := strings.CutPrefix(pattern, "*."); ok {
			wildcards = append(wildcards, suffix)
		} else {
			exact[pattern] = struct{}{}
		}
	}

	return &Renderer{
		logger:        logger,
		markdown:      markdown,
		policy:        policy,
		exactHosts:    exact,
		wildcardHosts: wildcards,
	}
}

// RenderPost 把一个帖子实体转换成响应 VO。转换步骤（按序）:
//  1. 图片链接规范化 + 主机白名单判定（不在名单内降级为 image_link，不丢引用）。
//  2. 原始标记文本渲染为 HTML（支持围栏代码块）。
//  3. 渲染结果按固定标签/属性白名单净化。
//  4. 净化结果写入 Html 字段，原始 text 不进入响应。
//
// 主题帖与评论的派生字段按变体区分：评论只带 Parent，主题帖只带排序字段。
func (r *Renderer) RenderPost(post *entities.Post) *vo.PostVO {
	out := &vo.PostVO{
		ID:        post.ID,
		Email:     post.Email,
		CreatedAt: post.CreatedAt,
	}

	if post.ParentID != nil {
		parent := *post.ParentID
		out.Parent = &parent
	} else {
		sages := post.Sages
		maxCommentID := post.MaxCommentID
		score := post.Score
		out.Sages = &sages
		out.MaxCommentID = &maxCommentID
		out.Score = &score
	}

	out.Image, out.ImageLink = r.normalizeImage(post.Image, post.ID)
	out.Html = r.renderText(post.Text, post.ID)
	return out
}

// RenderPosts 按序渲染一批帖子。
func (r *Renderer) RenderPosts(posts []*entities.Post) []*vo.PostVO {
	rendered := make([]*vo.PostVO, 0, len(posts))
	for _, post := range posts {
		rendered = append(rendered, r.RenderPost(post))
	}
	return rendered
}

// normalizeImage 解析并判定图片链接。
// - 空串: 两者皆空（没有图片就没有引用可保留）。
// - 解析失败或缺少主机/非 http(s) 协议: fail-closed，两者皆空并记日志。
// - 主机在白名单内: 重新序列化后的 URL 留在 image。
// - 主机不在白名单内: image 为空，规范化 URL 放入 image_link，引用不被静默丢弃。
func (r *Renderer) normalizeImage(raw string, postID uint64) (image *string, imageLink *string) {
	if raw == "" {
		return nil, nil
	}

	parsed, err := url.Parse(raw)
	if err != nil || parsed.Host == "" || (parsed.Scheme != "http" && parsed.Scheme != "https") {
		r.logger.Warn("图片链接无法安全解析，已丢弃",
			zap.Uint64("postID", postID),
			zap.String("image", raw),
			zap.Error(err),
		)
		return nil, nil
	}

	normalized := parsed.String()
	if r.hostAllowed(strings.ToLower(parsed.Hostname())) {
		return &normalized, nil
	}
	return nil, &normalized
}

// hostAllowed 判定主机是否在内嵌白名单内。
// 通配模式 "*.example.com" 同时匹配 "example.com" 与其任意子域名。
func (r *Renderer) hostAllowed(host string) bool {
	if _, ok := r.exactHosts[host]; ok {
		return true
	}
	for _, suffix := range r.wildcardHosts {
		if host == suffix || strings.HasSuffix(host, "."+suffix) {
			return true
		}
	}
	return false
}

// renderText 把原始标记渲染并净化为 HTML。
// goldmark 默认不放行内嵌的原始 HTML，bluemonday 再按白名单过滤一遍，
// 两层都失败时返回空串（帖子仍然可列出，只是没有正文渲染）。
func (r *Renderer) renderText(text string, postID uint64) string {
	var buf bytes.Buffer
	if err := r.markdown.Convert([]byte(text), &buf); err != nil {
		r.logger.Warn("帖子正文渲染失败，降级为空渲染",
			zap.Uint64("postID", postID),
			zap.Error(err),
		)
		return ""
	}
	return r.policy.Sanitize(buf.String())
}
