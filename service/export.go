package service

import (
	"encoding/csv"
	"fmt"
	"io"
)

// ExportCSV 写出CSV：首行为表头，行序与传入顺序一致
func ExportCSV(w io.Writer, headers []string, rows [][]string) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(headers); err != nil {
		return fmt.Errorf("写入表头失败: %w", err)
	}
	for _, row := range rows {
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("写入数据行失败: %w", err)
		}
	}
	writer.Flush()
	return writer.Error()
}

// customerExportHeaders 导出列，顺序固定
var customerExportHeaders = []string{
	"姓名", "手机号", "邮箱", "意向车型", "来源", "阶段", "城市", "意向等级", "预计成交额", "归属顾问", "最后联系时间",
}

// CustomerExportRows 按当前视图(过滤+排序，不分页)构建导出行
func (m *Manager) CustomerExportRows(q CustomerQuery) ([]string, [][]string) {
	list := m.scopedCustomers(q.OwnerFilter)
	list = filterCustomers(list, q.Search)
	m.sortCustomers(list, q.Sort)

	rows := make([][]string, 0, len(list))
	for _, c := range list {
		statusName := ""
		if s, ok := m.data.StatusByID(c.StatusID); ok {
			statusName = s.Name
		}
		owner := m.userDisplayName(c.OwnerUserID)
		if owner == "" {
			owner = "未分配"
		}
		rows = append(rows, []string{
			c.Name,
			c.Phone,
			c.Email,
			c.CarModel,
			c.Source,
			statusName,
			c.City,
			string(c.Tier),
			fmt.Sprintf("%.2f", c.SalesValue),
			owner,
			c.LastContactAt.Format("2006-01-02 15:04"),
		})
	}
	return customerExportHeaders, rows
}

// ExportCustomersCSV 综合入口：推导当前可见客户并写出CSV
func (m *Manager) ExportCustomersCSV(w io.Writer, q CustomerQuery) error {
	headers, rows := m.CustomerExportRows(q)
	return ExportCSV(w, headers, rows)
}
