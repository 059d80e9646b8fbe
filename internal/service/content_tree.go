package service

import (
	"edunity_backend/internal/model"
	"edunity_backend/pkg/i18n"
	"sort"
	"strings"
)

// UserProgress 某个用户在一门课程上的全部进度记录
type UserProgress struct {
	Lectures map[uint]model.ProgressLecture
	Quizzes  map[uint]model.ProgressQuiz
}

// ContentTreeBuilder 把目录快照和用户进度组装成有序的课程内容树
type ContentTreeBuilder struct {
	Bundle *i18n.Bundle
	Locale string
}

func NewContentTreeBuilder(bundle *i18n.Bundle, locale string) *ContentTreeBuilder {
	if bundle == nil {
		bundle = i18n.Default
	}
	return &ContentTreeBuilder{Bundle: bundle, Locale: locale}
}

// Build 章节与旧版课程级测验按 order 交错排列，order 相同时章节在前
func (b *ContentTreeBuilder) Build(catalog *model.CourseCatalog, progress UserProgress) []model.CourseNode {
	lecturesBySection := make(map[uint][]model.Lecture, len(catalog.Sections))
	for _, l := range catalog.Lectures {
		lecturesBySection[l.SectionID] = append(lecturesBySection[l.SectionID], l)
	}
	quizzesBySection := make(map[uint][]model.Quiz, len(catalog.Sections))
	for _, q := range catalog.Quizzes {
		if q.SectionID != nil {
			quizzesBySection[*q.SectionID] = append(quizzesBySection[*q.SectionID], q)
		}
	}

	sections := make([]model.CourseNode, 0, len(catalog.Sections))
	for _, s := range sortedSections(catalog.Sections) {
		sections = append(sections, b.sectionNode(s, lecturesBySection[s.ID], quizzesBySection[s.ID], catalog.QuestionCounts, progress))
	}

	topLevel := make([]model.CourseNode, 0, len(catalog.TopLevelQuizzes))
	for _, q := range sortedQuizzes(catalog.TopLevelQuizzes) {
		item := b.QuizItem(q, catalog.QuestionCounts[q.ID], progressForQuiz(progress, q.ID))
		item.ContentCourseType = string(model.KindQuiz)
		topLevel = append(topLevel, item)
	}

	return mergeByOrder(sections, topLevel)
}

func (b *ContentTreeBuilder) sectionNode(s model.Section, lectures []model.Lecture, quizzes []model.Quiz, counts map[uint]int, progress UserProgress) *model.SectionNode {
	items := make([]model.ContentItem, 0, len(lectures)+len(quizzes))
	var videoSeconds float64
	for _, l := range lectures {
		items = append(items, b.LectureItem(l, progressForLecture(progress, l.ID)))
		if l.Type == model.LectureVideo {
			videoSeconds += l.Duration
		}
	}
	for _, q := range quizzes {
		items = append(items, b.QuizItem(q, counts[q.ID], progressForQuiz(progress, q.ID)))
	}
	// order 相同时讲座先于测验
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].ItemOrder() != items[j].ItemOrder() {
			return items[i].ItemOrder() < items[j].ItemOrder()
		}
		if ri, rj := kindRank(items[i]), kindRank(items[j]); ri != rj {
			return ri < rj
		}
		return items[i].ItemID() < items[j].ItemID()
	})

	return &model.SectionNode{
		ID:                s.ID,
		Title:             s.Title,
		Order:             s.Order,
		ContentCourseType: model.CourseNodeSection,
		DurationDisplay:   b.Bundle.FormatDuration(b.Locale, videoSeconds),
		SectionContent:    items,
	}
}

// LectureItem 没有进度记录时 Learned/Percent 为 nil
func (b *ContentTreeBuilder) LectureItem(l model.Lecture, p *model.ProgressLecture) *model.LectureItem {
	item := &model.LectureItem{
		ID:                 l.ID,
		SectionID:          l.SectionID,
		Title:              l.Title,
		Order:              l.Order,
		ContentSectionType: model.KindLecture,
		Type:               l.Type,
		ContentLink:        l.ContentLink,
		Duration:           l.Duration,
		DurationDisplay:    b.durationDisplay(l),
	}
	if p != nil {
		learned, percent := p.Learned, p.Percent
		item.Learned = &learned
		item.Percent = &percent
	}
	return item
}

func (b *ContentTreeBuilder) QuizItem(q model.Quiz, totalQuestions int, p *model.ProgressQuiz) *model.QuizItem {
	item := &model.QuizItem{
		ID:                 q.ID,
		SectionID:          q.SectionID,
		Title:              q.Title,
		Order:              q.Order,
		ContentSectionType: model.KindQuiz,
		TotalQuestionCount: totalQuestions,
	}
	if p != nil {
		done, percent := p.QuestionsDone, p.Percent
		item.QuestionsDone = &done
		item.Percent = &percent
	}
	return item
}

func (b *ContentTreeBuilder) durationDisplay(l model.Lecture) string {
	switch l.Type {
	case model.LectureFile:
		return b.Bundle.FormatPages(b.Locale, l.Duration)
	default:
		return b.Bundle.FormatDuration(b.Locale, l.Duration)
	}
}

func kindRank(item model.ContentItem) int {
	switch item.(type) {
	case *model.LectureItem:
		return 0
	case *model.QuizItem:
		return 1
	}
	return 2
}

func progressForLecture(progress UserProgress, id uint) *model.ProgressLecture {
	if p, ok := progress.Lectures[id]; ok {
		return &p
	}
	return nil
}

func progressForQuiz(progress UserProgress, id uint) *model.ProgressQuiz {
	if p, ok := progress.Quizzes[id]; ok {
		return &p
	}
	return nil
}

func sortedSections(sections []model.Section) []model.Section {
	out := append([]model.Section(nil), sections...)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Order != out[j].Order {
			return out[i].Order < out[j].Order
		}
		return out[i].ID < out[j].ID
	})
	return out
}

func sortedQuizzes(quizzes []model.Quiz) []model.Quiz {
	out := append([]model.Quiz(nil), quizzes...)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Order != out[j].Order {
			return out[i].Order < out[j].Order
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// mergeByOrder 两个有序列表归并，order 相同时取 first 中的节点
func mergeByOrder(first, second []model.CourseNode) []model.CourseNode {
	out := make([]model.CourseNode, 0, len(first)+len(second))
	i, j := 0, 0
	for i < len(first) && j < len(second) {
		if second[j].NodeOrder() < first[i].NodeOrder() {
			out = append(out, second[j])
			j++
			continue
		}
		out = append(out, first[i])
		i++
	}
	out = append(out, first[i:]...)
	return append(out, second[j:]...)
}

// FilterTree 关键字过滤（不区分大小写的子串匹配）：章节标题命中则保留整个章节，
// 否则只保留标题命中的内容项，没有命中项的章节丢弃。章节统计数据保持过滤前的值
func FilterTree(nodes []model.CourseNode, keyword string) []model.CourseNode {
	keyword = strings.ToLower(strings.TrimSpace(keyword))
	if keyword == "" {
		return nodes
	}
	matches := func(title string) bool {
		return strings.Contains(strings.ToLower(title), keyword)
	}

	out := make([]model.CourseNode, 0, len(nodes))
	for _, node := range nodes {
		switch n := node.(type) {
		case *model.SectionNode:
			if matches(n.Title) {
				out = append(out, n)
				continue
			}
			kept := make([]model.ContentItem, 0, len(n.SectionContent))
			for _, item := range n.SectionContent {
				if matches(item.ItemTitle()) {
					kept = append(kept, item)
				}
			}
			if len(kept) == 0 {
				continue
			}
			filtered := *n
			filtered.SectionContent = kept
			out = append(out, &filtered)
		case *model.QuizItem:
			if matches(n.Title) {
				out = append(out, n)
			}
		}
	}
	return out
}
