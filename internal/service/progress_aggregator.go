package service

import (
	"edunity_backend/internal/model"
	"edunity_backend/internal/util"
)

// AggregateProgress 单趟遍历内容树：回填每个章节的统计，返回课程级汇总。
// 直接挂在课程上的测验同样计入课程总数
func AggregateProgress(nodes []model.CourseNode) model.CourseSummary {
	var totalCount, totalDone int

	for _, node := range nodes {
		switch n := node.(type) {
		case *model.SectionNode:
			n.SectionSummary = summarizeSection(n.SectionContent)
			totalCount += n.TotalCount
			totalDone += n.TotalDone
		case *model.QuizItem:
			totalCount++
			if model.IsDone(n) {
				totalDone++
			}
		}
	}

	summary := model.CourseSummary{
		TotalCount:        totalCount,
		TotalDone:         totalDone,
		TotalLectureCount: totalCount,
		TotalLectureDone:  totalDone,
	}
	if totalCount > 0 {
		summary.ProgressPercent = util.Round2(float64(totalDone) / float64(totalCount) * 100)
	}
	return summary
}

func summarizeSection(items []model.ContentItem) model.SectionSummary {
	var s model.SectionSummary
	for _, item := range items {
		done := model.IsDone(item)
		switch item.(type) {
		case *model.LectureItem:
			s.ContentCount++
			if done {
				s.ContentDone++
			}
		case *model.QuizItem:
			s.QuizCount++
			if done {
				s.QuizDone++
			}
		}
	}
	s.TotalCount = s.ContentCount + s.QuizCount
	s.TotalDone = s.ContentDone + s.QuizDone
	return s
}

// OverviewPercent 课程列表使用整数百分比
func OverviewPercent(summary model.CourseSummary) int {
	if summary.TotalCount == 0 {
		return 0
	}
	return int(float64(summary.TotalDone)/float64(summary.TotalCount)*100 + 0.5)
}
