package service

import "edunity_backend/internal/model"

// cursorEntry 内容树展开后的一项，NodeIndex 为课程第一层节点下标，
// ItemIndex 为章节内下标（课程级测验为 -1）
type cursorEntry struct {
	NodeIndex int
	ItemIndex int
	Item      model.ContentItem
}

// flattenTree 按文档顺序展开内容树
func flattenTree(nodes []model.CourseNode) []cursorEntry {
	var entries []cursorEntry
	for i, node := range nodes {
		switch n := node.(type) {
		case *model.SectionNode:
			for j, item := range n.SectionContent {
				entries = append(entries, cursorEntry{NodeIndex: i, ItemIndex: j, Item: item})
			}
		case *model.QuizItem:
			entries = append(entries, cursorEntry{NodeIndex: i, ItemIndex: -1, Item: n})
		}
	}
	return entries
}

// ResolveCursor 第一个未完成的内容项；全部完成时回到第一个内容项；没有内容时返回 nil
func ResolveCursor(nodes []model.CourseNode) model.ContentItem {
	entries := flattenTree(nodes)
	if len(entries) == 0 {
		return nil
	}
	for _, e := range entries {
		if !model.IsDone(e.Item) {
			return e.Item
		}
	}
	return entries[0].Item
}

// findItem 在内容树中按类型和 ID 查找
func findItem(nodes []model.CourseNode, kind model.ContentKind, id uint) model.ContentItem {
	for _, e := range flattenTree(nodes) {
		if e.Item.Kind() == kind && e.Item.ItemID() == id {
			return e.Item
		}
	}
	return nil
}
