package service

import (
	"sort"

	"carcrm/models"
)

// FunnelStage 漏斗中的一级
type FunnelStage struct {
	Status models.Status `json:"status"`
	Count  int           `json:"count"`
	Value  float64       `json:"value"`
}

// DashboardStats 数据看板统计，按当前会话的可见范围计算
type DashboardStats struct {
	TotalCustomers int `json:"totalCustomers"`
	PipelineCount  int `json:"pipelineCount"`
	WonCount       int `json:"wonCount"`
	DeliveredCount int `json:"deliveredCount"`
	LostCount      int `json:"lostCount"`

	PipelineValue  float64 `json:"pipelineValue"`
	WonValue       float64 `json:"wonValue"`
	DeliveredValue float64 `json:"deliveredValue"`

	TierCounts    map[models.CustomerTier]int `json:"tierCounts"`
	OpenReminders int                         `json:"openReminders"`
	Funnel        []FunnelStage               `json:"funnel"`
}

// Dashboard 汇总看板统计
func (m *Manager) Dashboard() DashboardStats {
	stats := DashboardStats{
		TierCounts: make(map[models.CustomerTier]int),
	}

	scoped := m.scopedCustomers("")
	stats.TotalCustomers = len(scoped)

	byStatus := make(map[string]*FunnelStage)
	for _, c := range scoped {
		stats.TierCounts[c.Tier]++

		status, ok := m.data.StatusByID(c.StatusID)
		if !ok {
			continue
		}
		switch status.Kind {
		case models.StatusKindPipeline:
			stats.PipelineCount++
			stats.PipelineValue += c.SalesValue
		case models.StatusKindWin:
			stats.WonCount++
			stats.WonValue += c.SalesValue
		case models.StatusKindDelivery:
			stats.DeliveredCount++
			stats.DeliveredValue += c.SalesValue
		case models.StatusKindLostSale:
			stats.LostCount++
		}

		stage, exists := byStatus[status.ID]
		if !exists {
			stage = &FunnelStage{Status: status}
			byStatus[status.ID] = stage
		}
		stage.Count++
		stage.Value += c.SalesValue
	}

	for _, stage := range byStatus {
		stats.Funnel = append(stats.Funnel, *stage)
	}
	sort.SliceStable(stats.Funnel, func(i, j int) bool {
		return stats.Funnel[i].Status.Order < stats.Funnel[j].Status.Order
	})

	stats.OpenReminders = len(m.VisibleReminders(false))
	return stats
}

// SourceReportRow 按客户来源聚合的投产报表行
// 营销投入按name与来源同名的约定匹配
type SourceReportRow struct {
	Source           string  `json:"source"`
	Customers        int     `json:"customers"`
	DeliveredRevenue float64 `json:"deliveredRevenue"`
	MarketingSpend   float64 `json:"marketingSpend"`
	LTVCACRatio      float64 `json:"ltvCacRatio"` // 投入为0时记0
}

// SourceReport 生成LTV:CAC报表
func (m *Manager) SourceReport() []SourceReportRow {
	spendByName := make(map[string]float64)
	for _, s := range m.data.MarketingSpends {
		spendByName[s.Name] += s.Amount
	}

	rows := make([]SourceReportRow, 0, len(m.data.Sources))
	scoped := m.scopedCustomers("")
	for _, src := range m.data.Sources {
		row := SourceReportRow{
			Source:         src.Name,
			MarketingSpend: spendByName[src.Name],
		}
		for _, c := range scoped {
			if c.Source != src.Name {
				continue
			}
			row.Customers++
			if status, ok := m.data.StatusByID(c.StatusID); ok && status.Kind == models.StatusKindDelivery {
				row.DeliveredRevenue += c.SalesValue
			}
		}
		if row.MarketingSpend > 0 {
			row.LTVCACRatio = row.DeliveredRevenue / row.MarketingSpend
		}
		rows = append(rows, row)
	}
	return rows
}
