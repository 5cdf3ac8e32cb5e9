package model

import (
	"bytes"
	"encoding/json"
)

// ========== TourAPI（KorService2）响应结构 ==========

// TourResponse 所有 TourAPI 接口共用的根响应
type TourResponse struct {
	Response struct {
		Header TourHeader `json:"header"`
		Body   TourBody   `json:"body"`
	} `json:"response"`
}

// TourHeader 结果码：0000 为成功
type TourHeader struct {
	ResultCode string `json:"resultCode"`
	ResultMsg  string `json:"resultMsg"`
}

type TourBody struct {
	Items      TourItems `json:"items"`
	NumOfRows  int       `json:"numOfRows"`
	PageNo     int       `json:"pageNo"`
	TotalCount int       `json:"totalCount"`
}

// TourItems 无结果时上游返回空字符串 ""，有结果时返回 {"item": ...}
type TourItems struct {
	Item TourItemList `json:"item"`
}

func (t *TourItems) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		// "" / null / 其它标量一律视为空列表
		t.Item = nil
		return nil
	}
	type plain TourItems
	var p plain
	if err := json.Unmarshal(trimmed, &p); err != nil {
		return err
	}
	*t = TourItems(p)
	return nil
}

// TourItemList item 字段在单条结果时是对象，多条时是数组，统一成切片
type TourItemList []TourItem

func (l *TourItemList) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	switch {
	case len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")):
		*l = nil
		return nil
	case trimmed[0] == '[':
		var items []TourItem
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return err
		}
		*l = items
		return nil
	case trimmed[0] == '{':
		var item TourItem
		if err := json.Unmarshal(trimmed, &item); err != nil {
			return err
		}
		*l = TourItemList{item}
		return nil
	default:
		*l = nil
		return nil
	}
}

// TourItem 单条内容（各接口字段并集，缺失字段为空串）
type TourItem struct {
	ContentID       string `json:"contentid"`
	ContentTypeID   string `json:"contenttypeid"`
	Title           string `json:"title"`
	EventStartDate  string `json:"eventstartdate"`
	EventEndDate    string `json:"eventenddate"`
	Addr1           string `json:"addr1"`
	FirstImage      string `json:"firstimage"`
	FirstImage2     string `json:"firstimage2"`
	MapX            string `json:"mapx"`
	MapY            string `json:"mapy"`
	Tel             string `json:"tel"`
	Overview        string `json:"overview"`
	Playtime        string `json:"playtime"`
	UseTimeFestival string `json:"usetimefestival"`
	AgeLimit        string `json:"agelimit"`
	BookingPlace    string `json:"bookingplace"`
	PlaceInfo       string `json:"placeinfo"`
	Sponsor1        string `json:"sponsor1"`
	Sponsor1Tel     string `json:"sponsor1tel"`
}
