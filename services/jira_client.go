package services

import (
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// JiraIssue Jira工单的最小字段集，验证任务只关心存在性与状态
type JiraIssue struct {
	Key     string
	Summary string
	Status  string
}

// TicketLookup 查询结果三态：命中 / 确认不存在 / 传输层错误
// NotFound是正常业务信号，驱动删除+屏蔽，不作为error处理
type TicketLookup struct {
	Issue    *JiraIssue
	NotFound bool
	Err      error
}

// IssueTracker 权威工单系统客户端
type IssueTracker interface {
	GetTicket(ticketNumber string) TicketLookup
}

// JiraAPIClient Jira REST客户端，使用PAT做Bearer认证
type JiraAPIClient struct {
	Server string
	Token  string
	Client *http.Client
}

func NewJiraAPIClient(server, token string) *JiraAPIClient {
	return &JiraAPIClient{
		Server: server,
		Token:  token,
		Client: &http.Client{Timeout: 30 * time.Second},
	}
}

type jiraIssueResp struct {
	Key    string `json:"key"`
	Fields struct {
		Summary string `json:"summary"`
		Status  struct {
			Name string `json:"name"`
		} `json:"status"`
	} `json:"fields"`
}

func (c *JiraAPIClient) GetTicket(ticketNumber string) TicketLookup {
	endpoint := fmt.Sprintf("%s/rest/api/2/issue/%s?fields=summary,status", c.Server, url.PathEscape(ticketNumber))
	req, err := http.NewRequest(http.MethodGet, endpoint, nil)
	if err != nil {
		return TicketLookup{Err: err}
	}
	req.Header.Set("Authorization", "Bearer "+c.Token)
	req.Header.Set("Accept", "application/json")

	resp, err := c.Client.Do(req)
	if err != nil {
		return TicketLookup{Err: fmt.Errorf("请求Jira失败: %v", err)}
	}
	defer resp.Body.Close()

	// 404是明确的"已删除"信号，与其他错误严格区分
	if resp.StatusCode == http.StatusNotFound {
		return TicketLookup{NotFound: true}
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return TicketLookup{Err: fmt.Errorf("Jira返回异常状态: %d, body=%s", resp.StatusCode, string(body))}
	}

	var ir jiraIssueResp
	if err := json.NewDecoder(resp.Body).Decode(&ir); err != nil {
		return TicketLookup{Err: fmt.Errorf("解析Jira响应失败: %v", err)}
	}
	return TicketLookup{Issue: &JiraIssue{
		Key:     ir.Key,
		Summary: ir.Fields.Summary,
		Status:  ir.Fields.Status.Name,
	}}
}
