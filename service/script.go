package service

import (
	"fmt"

	"carcrm/models"
	"carcrm/utils"
)

// ScriptGenerator 跟进话术生成器
// 对数据管理器而言是不透明的外部调用：返回文本或失败
type ScriptGenerator interface {
	GenerateFollowUpScript(customer models.Customer, agentName string) (string, error)
}

// TemplateScriptGenerator 默认的模板话术生成器
type TemplateScriptGenerator struct{}

// GenerateFollowUpScript 按客户信息套模板
func (TemplateScriptGenerator) GenerateFollowUpScript(customer models.Customer, agentName string) (string, error) {
	car := customer.CarModel
	if car == "" {
		car = "您关注的车型"
	}
	script := fmt.Sprintf(
		"%s您好，我是销售顾问%s。您之前咨询过%s，最近店里有试驾和优惠活动，方便的话想跟您约个到店时间，您看这周哪天合适？",
		customer.Name, agentName, car,
	)
	return script, nil
}

// ScriptResult 异步话术生成的结果
type ScriptResult struct {
	CustomerID string
	Text       string
	Err        error
}

// FollowUpScriptAsync 为指定客户异步生成跟进话术
//
// 调用读取的是客户数据的快照，不阻塞也不被后续数据变更影响；
// 生成期间再次调用会发起互相独立的新请求，不去重也不取消前一个。
// 失败信息原样通过通知回调透出，数据集不受影响。
func (m *Manager) FollowUpScriptAsync(customerID string) <-chan ScriptResult {
	ch := make(chan ScriptResult, 1)

	idx := m.findCustomer(customerID)
	if idx < 0 {
		ch <- ScriptResult{CustomerID: customerID, Err: utils.CreateNotFoundError("客户")}
		close(ch)
		return ch
	}

	// 客户快照，跟进记录一并深拷贝
	snapshot := m.data.Customers[idx]
	snapshot.Interactions = append([]models.Interaction(nil), snapshot.Interactions...)

	agentName := ""
	if m.session != nil {
		agentName = m.session.DisplayName
	}

	generator := m.script
	notify := m.notify
	go func() {
		text, err := generator.GenerateFollowUpScript(snapshot, agentName)
		if err != nil && notify != nil {
			notify(err.Error(), "error")
		}
		ch <- ScriptResult{CustomerID: customerID, Text: text, Err: err}
		close(ch)
	}()
	return ch
}
