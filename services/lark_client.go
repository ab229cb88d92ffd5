package services

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync"
	"time"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// SearchFilter Lark多维表格search接口的过滤条件
type SearchFilter struct {
	Conjunction string            `json:"conjunction"`
	Conditions  []SearchCondition `json:"conditions"`
}

type SearchCondition struct {
	FieldName string        `json:"field_name"`
	Operator  string        `json:"operator"`
	Value     []interface{} `json:"value"`
}

// UpdatedAfterFilter 构造"Updated Date晚于cutoffMs"的增量过滤条件
// DateTime字段的isGreater要求value形如["ExactDate", 毫秒时间戳]
func UpdatedAfterFilter(cutoffMs int64) *SearchFilter {
	return &SearchFilter{
		Conjunction: "and",
		Conditions: []SearchCondition{
			{
				FieldName: "Updated Date",
				Operator:  "isGreater",
				Value:     []interface{}{"ExactDate", cutoffMs},
			},
		},
	}
}

type LarkRecord struct {
	RecordID string                 `json:"record_id"`
	Fields   map[string]interface{} `json:"fields"`
}

type RecordPage struct {
	Items     []LarkRecord `json:"items"`
	HasMore   bool         `json:"has_more"`
	PageToken string       `json:"page_token"`
	Total     int          `json:"total"`
}

// LarkClient 远端表格服务客户端，按游标分页拉取记录
type LarkClient interface {
	ListRecords(appToken string, tableID string, filter *SearchFilter, pageToken string) (*RecordPage, error)
}

// LarkAPIClient Lark开放平台HTTP客户端，tenant_access_token在内存缓存到过期
type LarkAPIClient struct {
	Domain    string
	AppID     string
	AppSecret string
	Client    *http.Client

	mu          sync.Mutex
	token       string
	tokenExpire time.Time
}

func NewLarkAPIClient(domain, appID, appSecret string) *LarkAPIClient {
	return &LarkAPIClient{
		Domain:    domain,
		AppID:     appID,
		AppSecret: appSecret,
		Client:    &http.Client{Timeout: 30 * time.Second},
	}
}

type tenantTokenResp struct {
	Code              int    `json:"code"`
	Msg               string `json:"msg"`
	TenantAccessToken string `json:"tenant_access_token"`
	Expire            int    `json:"expire"`
}

func (c *LarkAPIClient) tenantAccessToken() (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.token != "" && time.Now().Before(c.tokenExpire) {
		return c.token, nil
	}

	body, err := json.Marshal(map[string]string{
		"app_id":     c.AppID,
		"app_secret": c.AppSecret,
	})
	if err != nil {
		return "", err
	}
	resp, err := c.Client.Post(c.Domain+"/open-apis/auth/v3/tenant_access_token/internal", "application/json", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("获取tenant_access_token失败: %v", err)
	}
	defer resp.Body.Close()

	var tr tenantTokenResp
	if err := json.NewDecoder(resp.Body).Decode(&tr); err != nil {
		return "", fmt.Errorf("解析token响应失败: %v", err)
	}
	if tr.Code != 0 {
		return "", fmt.Errorf("获取token被拒绝: code=%d, msg=%s", tr.Code, tr.Msg)
	}

	c.token = tr.TenantAccessToken
	// 提前60秒过期，避开边界
	c.tokenExpire = time.Now().Add(time.Duration(tr.Expire-60) * time.Second)
	return c.token, nil
}

type searchRecordsResp struct {
	Code int        `json:"code"`
	Msg  string     `json:"msg"`
	Data RecordPage `json:"data"`
}

// ListRecords 调用bitable records/search接口拉取一页记录
func (c *LarkAPIClient) ListRecords(appToken string, tableID string, filter *SearchFilter, pageToken string) (*RecordPage, error) {
	token, err := c.tenantAccessToken()
	if err != nil {
		return nil, err
	}

	reqBody := map[string]interface{}{}
	if filter != nil {
		reqBody["filter"] = filter
	}
	body, err := json.Marshal(reqBody)
	if err != nil {
		return nil, err
	}

	endpoint := fmt.Sprintf("%s/open-apis/bitable/v1/apps/%s/tables/%s/records/search", c.Domain, appToken, tableID)
	params := url.Values{}
	params.Set("page_size", "500")
	if pageToken != "" {
		params.Set("page_token", pageToken)
	}

	req, err := http.NewRequest(http.MethodPost, endpoint+"?"+params.Encode(), bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("请求Lark记录失败: %v", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	var sr searchRecordsResp
	if err := json.Unmarshal(raw, &sr); err != nil {
		return nil, fmt.Errorf("解析Lark响应失败: %v", err)
	}
	if sr.Code != 0 {
		return nil, fmt.Errorf("Lark接口返回错误: code=%d, msg=%s", sr.Code, sr.Msg)
	}
	return &sr.Data, nil
}
