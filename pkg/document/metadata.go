package document

import (
	"github.com/jinzhu/copier"
)

// Metadata 文档元数据
type Metadata struct {
	Title       string
	Authors     []string
	Description string
	Category    string
	Version     string
	Status      string
	Language    string
	Keywords    []string
	// Identifier 文档唯一标识，New 创建的文档为随机 UUID
	Identifier string
}

// Clone 深拷贝元数据，切片不与原值共享
func (m Metadata) Clone() Metadata {
	var out Metadata
	if err := copier.CopyWithOption(&out, &m, copier.Option{DeepCopy: true}); err != nil {
		// 同类型结构体之间的拷贝不会失败，这里退回到手工拷贝
		out = m
		out.Authors = append([]string(nil), m.Authors...)
		out.Keywords = append([]string(nil), m.Keywords...)
	}
	// 保持 nil 切片为 nil
	if m.Authors == nil {
		out.Authors = nil
	}
	if m.Keywords == nil {
		out.Keywords = nil
	}
	return out
}
