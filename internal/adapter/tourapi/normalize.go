package tourapi

import (
	"encoding/json"
	"fmt"
	"html"
	"regexp"
	"strings"

	"CultureSync/internal/model"

	"github.com/sirupsen/logrus"
)

const successCode = "0000"

// pricePatterns 按顺序尝试：明确的费用字段 → 무료 → 任意 N원
var pricePatterns = []*regexp.Regexp{
	regexp.MustCompile(`입장료[:\s]*([0-9,]+원)`),
	regexp.MustCompile(`관람료[:\s]*([0-9,]+원)`),
	regexp.MustCompile(`가격[:\s]*([0-9,]+원)`),
	regexp.MustCompile(`요금[:\s]*([0-9,]+원)`),
	regexp.MustCompile(model.FreePrice),
	regexp.MustCompile(`(\d{1,3}(?:,\d{3})+원|\d+원)`),
}

var htmlTag = regexp.MustCompile(`<[^>]*>`)

// decodeResponse 解析根响应并校验 resultCode
func decodeResponse(body []byte) (*model.TourResponse, error) {
	var resp model.TourResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("解析TourAPI响应失败: %w", err)
	}
	header := resp.Response.Header
	if header.ResultCode != successCode {
		msg := strings.TrimSpace(header.ResultMsg)
		if msg == "" {
			msg = defaultUpstreamMessage
		}
		return nil, &UpstreamError{Code: header.ResultCode, Message: msg}
	}
	return &resp, nil
}

// Normalize 把一次上游响应转换为统一记录。
// partitionCode 是本次请求所属分区；条目自带 contenttypeid 时以条目为准。
// 缺少 contentid 或 title 的条目直接丢弃，不视为错误。
func (c *Client) Normalize(body []byte, partitionCode, source string) ([]model.Event, error) {
	resp, err := decodeResponse(body)
	if err != nil {
		return nil, err
	}
	items := resp.Response.Body.Items.Item
	events := make([]model.Event, 0, len(items))
	dropped := 0
	for _, item := range items {
		if strings.TrimSpace(item.ContentID) == "" || strings.TrimSpace(item.Title) == "" {
			dropped++
			continue
		}
		code := item.ContentTypeID
		if code == "" {
			code = partitionCode
		}
		events = append(events, transformItem(item, c.categoryFor(code), source))
	}
	if dropped > 0 {
		c.logger.WithFields(logrus.Fields{
			"source":  source,
			"dropped": dropped,
		}).Debug("丢弃缺少contentid/title的条目")
	}
	return events, nil
}

// categoryFor 代码→分类；未知代码回落到 festival，并记录日志与指标便于发现误分类
func (c *Client) categoryFor(code string) model.Category {
	category, ok := model.CategoryFromContentType(code)
	if !ok {
		c.logger.WithField("content_type_id", code).Debug("未知contenttypeid，按festival处理")
		c.metrics.IncUnknownCode(code)
	}
	return category
}

func transformItem(item model.TourItem, category model.Category, source string) model.Event {
	startDate := strings.TrimSpace(item.EventStartDate)
	endDate := strings.TrimSpace(item.EventEndDate)
	if endDate == "" {
		endDate = startDate
	}

	price := ExtractPrice(item.Overview)
	if price == "" {
		price = model.DefaultPrice
	}
	description := CleanHTML(item.Overview)
	if description == "" {
		description = model.DefaultDescription
	}
	playtime := item.Playtime
	if playtime == "" {
		playtime = item.UseTimeFestival
	}

	return model.Event{
		ID:          strings.TrimSpace(item.ContentID),
		Title:       firstNonEmpty(strings.TrimSpace(item.Title), model.DefaultTitle),
		Category:    category,
		Date:        FormatDateRange(startDate, endDate),
		StartDate:   startDate,
		EndDate:     endDate,
		Place:       firstNonEmpty(strings.TrimSpace(item.Addr1), model.DefaultPlace),
		Price:       price,
		Image:       firstNonEmpty(item.FirstImage, item.FirstImage2),
		Description: description,
		Tel:         item.Tel,
		Playtime:    playtime,
		AgeLimit:    item.AgeLimit,
		Source:      source,
	}
}

// ExtractPrice 从概要文本中提取价格，识别不到返回空串
func ExtractPrice(overview string) string {
	if overview == "" {
		return ""
	}
	for _, p := range pricePatterns {
		m := p.FindStringSubmatch(overview)
		if m == nil {
			continue
		}
		if len(m) > 1 && m[1] != "" {
			return m[1]
		}
		return m[0]
	}
	return ""
}

// CleanHTML 去除标签并解码 HTML 实体
func CleanHTML(s string) string {
	if s == "" {
		return ""
	}
	s = htmlTag.ReplaceAllString(s, "")
	s = html.UnescapeString(s)
	s = strings.ReplaceAll(s, "\u00a0", " ")
	return strings.TrimSpace(s)
}

// FormatDate YYYYMMDD → YYYY.MM.DD，其它长度原样返回
func FormatDate(d string) string {
	if len(d) != 8 {
		return d
	}
	return d[0:4] + "." + d[4:6] + "." + d[6:8]
}

// FormatDateRange 展示用日期区间
func FormatDateRange(start, end string) string {
	if start == "" {
		return model.DefaultDate
	}
	if end == "" || start == end {
		return FormatDate(start)
	}
	return FormatDate(start) + " ~ " + FormatDate(end)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
