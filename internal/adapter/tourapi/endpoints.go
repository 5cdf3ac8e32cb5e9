package tourapi

import (
	"context"
	"fmt"

	"CultureSync/internal/interfaces"
	"CultureSync/internal/model"
)

// GetAreaBasedEvents 地区列表（areaBasedList2，按分区拉取）。条目自带 contenttypeid 时以其决定分类。
func (c *Client) GetAreaBasedEvents(ctx context.Context, q interfaces.AreaQuery) ([]model.Event, error) {
	params := map[string]string{}
	if q.ContentTypeID != "" {
		params["contentTypeId"] = q.ContentTypeID
	}
	if q.SigunguCode != "" {
		params["sigunguCode"] = q.SigunguCode
	}
	events, err := c.getEvents(ctx, EndpointAreaBased, params, q.ContentTypeID)
	if err != nil {
		return nil, fmt.Errorf("获取地区列表失败(contentTypeId=%s): %w", q.ContentTypeID, err)
	}
	return events, nil
}

// GetFestivalEvents 行事信息（searchFestival2，按举办期间），分类固定回落到 festival
func (c *Client) GetFestivalEvents(ctx context.Context, q interfaces.FestivalQuery) ([]model.Event, error) {
	params := map[string]string{}
	if q.EventStartDate != "" {
		params["eventStartDate"] = q.EventStartDate
	}
	if q.EventEndDate != "" {
		params["eventEndDate"] = q.EventEndDate
	}
	if q.Keyword != "" {
		params["keyword"] = q.Keyword
	}
	events, err := c.getEvents(ctx, EndpointFestival, params, model.CategoryFestival.ContentTypeID())
	if err != nil {
		return nil, fmt.Errorf("获取行事信息失败: %w", err)
	}
	return events, nil
}

// SearchEvents 关键字检索（searchKeyword2）；任何失败都包装为 ErrSearchFailure
func (c *Client) SearchEvents(ctx context.Context, keyword, contentTypeID string) ([]model.Event, error) {
	params := map[string]string{"keyword": keyword}
	if contentTypeID != "" {
		params["contentTypeId"] = contentTypeID
	}
	events, err := c.getEvents(ctx, EndpointKeyword, params, contentTypeID)
	if err != nil {
		c.logger.WithError(err).WithField("keyword", keyword).Error("关键字检索失败")
		return nil, fmt.Errorf("%w: %w", ErrSearchFailure, err)
	}
	return events, nil
}

// GetEventDetail 公共信息（detailCommon2）。上游无此记录时返回 (nil, nil)，请求失败时返回错误。
func (c *Client) GetEventDetail(ctx context.Context, contentID string) (*model.Event, error) {
	params := map[string]string{
		"contentId":    contentID,
		"defaultYN":    "Y",
		"firstImageYN": "Y",
		"areacodeYN":   "Y",
		"catcodeYN":    "Y",
		"addrinfoYN":   "Y",
		"mapinfoYN":    "Y",
		"overviewYN":   "Y",
	}
	events, err := c.getEvents(ctx, EndpointDetail, params, "")
	if err != nil {
		return nil, fmt.Errorf("获取详情失败(contentId=%s): %w", contentID, err)
	}
	if len(events) == 0 {
		return nil, nil
	}
	ev := events[0]
	return &ev, nil
}
