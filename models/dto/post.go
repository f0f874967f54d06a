package dto

// CreatePostRequest 定义了发帖请求的数据结构。
// - 字段白名单就是这里的四个字段：{email, image, text, parent}。
//   控制器使用 DisallowUnknownFields 解码，载荷中出现任何其他字段
//   都会在触碰 ID 分配器之前被整体拒绝（不做规范化、不做剔除）。
// - 长度上限在服务层校验：email < 100，image < 500，text < 20000。
type CreatePostRequest struct {
	Email  string  `json:"email"`            // 邮箱字段；评论值为 "sage"（忽略大小写）时表示不顶帖回复
	Image  string  `json:"image,omitempty"`  // 图片外链 URL，可选
	Text   string  `json:"text"`             // 原始标记文本
	Parent *uint64 `json:"parent,omitempty"` // 父主题帖 ID；缺省表示发布新主题帖
}
