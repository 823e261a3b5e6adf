// Package prompts maps each seller use case onto a prompt pair.
//
// Builders are pure: they never touch the network and never mutate their
// inputs, so the same input always yields the same GenerationRequest.
package prompts

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/yeeun-luckymealky/seller-proto-sub000/internal/llm"
	"github.com/yeeun-luckymealky/seller-proto-sub000/internal/types"
)

const reviewReplySystem = `당신은 '%s' 가게를 운영하는 사장님입니다. 마감 할인 럭키백을 구매한 고객이 남긴 리뷰에 답글을 작성하세요.
- 2~3문장, 150자 이내로 작성하세요.
- 별점이 4점 이상이면 감사 인사와 함께 재방문을 부탁하는 말로 마무리하세요.
- 별점이 3점 이하면 불편을 드린 점을 정중히 사과하고 개선하겠다는 의지를 보여주세요.
- 리뷰에 언급된 내용을 구체적으로 짚어 주세요.
- 따옴표나 머리말 없이 답글 본문만 출력하세요.`

const confirmMessageSystem = `당신은 럭키백 판매 가게의 주문 확정 안내 메시지를 작성하는 도우미입니다.
- 고객에게 주문이 확정되었음을 알리는 메시지를 3문장 이내로 작성하세요.
- 상품명과 픽업 시간을 반드시 포함하세요.
- 픽업 시간 안에 방문해 달라는 당부를 덧붙이세요.
- 따뜻하고 간결한 존댓말을 사용하고 이모지는 1개 이하로 사용하세요.
- 메시지 본문만 출력하세요.`

const cancelMessageSystem = `당신은 럭키백 판매 가게의 주문 취소 안내 메시지를 작성하는 도우미입니다.
- 주문이 취소되었음을 알리고 정중히 사과하는 메시지를 3문장 이내로 작성하세요.
- 취소 사유를 고객이 이해하기 쉬운 말로 전달하세요.
- 결제 금액은 자동으로 환불된다는 안내를 포함하세요.
- 다음에 다시 이용해 달라는 말로 마무리하세요.
- 메시지 본문만 출력하세요.`

const luckyBagDescriptionSystem = `당신은 음식 낭비를 줄이는 마감 할인 럭키백의 상품 설명을 쓰는 카피라이터입니다.
- 구성 가능한 메뉴를 바탕으로 기대감을 주는 설명을 2~3문장, 120자 이내로 작성하세요.
- 그날 남은 메뉴에 따라 구성이 달라질 수 있다는 점을 자연스럽게 알려주세요.
- 과장된 표현이나 확정되지 않은 구성 약속은 피하세요.
- 설명 본문만 출력하세요.`

const salesRecommendationSystem = `당신은 마감 할인 럭키백 판매 데이터를 분석하는 도우미입니다.
- 주어진 주문 통계를 바탕으로 오늘 판매할 럭키백 수량을 추천하세요.
- 첫 줄에 "추천 수량: N개" 형식으로 숫자 하나만 제시하세요.
- 이어서 근거를 2~3문장으로 설명하세요. 픽업 완료율과 취소 건수를 고려하세요.
- 데이터가 부족하면 보수적으로 추천하고 그 이유를 밝히세요.`

// ReviewReply builds the prompt for answering a customer review.
func ReviewReply(placeName, content string, rating int) llm.GenerationRequest {
	var b strings.Builder
	fmt.Fprintf(&b, "별점: %d점\n", rating)
	fmt.Fprintf(&b, "리뷰 내용: %s", content)

	return llm.GenerationRequest{
		SystemPrompt: fmt.Sprintf(reviewReplySystem, placeName),
		UserMessage:  b.String(),
	}
}

// ConfirmMessage builds the prompt for an order confirmation notice.
func ConfirmMessage(place types.PlaceInfo) llm.GenerationRequest {
	return llm.GenerationRequest{
		SystemPrompt: confirmMessageSystem,
		UserMessage:  placeLines(place),
	}
}

// CancelMessage builds the prompt for an order cancellation notice.
func CancelMessage(place types.PlaceInfo, reason string) llm.GenerationRequest {
	var b strings.Builder
	b.WriteString(placeLines(place))
	fmt.Fprintf(&b, "\n취소 사유: %s", reason)

	return llm.GenerationRequest{
		SystemPrompt: cancelMessageSystem,
		UserMessage:  b.String(),
	}
}

// LuckyBagDescription builds the prompt for a lucky-bag product description.
func LuckyBagDescription(place types.PlaceInfo, menuItems []string) llm.GenerationRequest {
	var b strings.Builder
	b.WriteString(placeLines(place))
	if place.Category != "" {
		fmt.Fprintf(&b, "\n업종: %s", place.Category)
	}
	if place.Price > 0 {
		fmt.Fprintf(&b, "\n판매가: %s", formatWon(place.Price))
		if place.OriginalPrice > place.Price {
			fmt.Fprintf(&b, " (정가 %s)", formatWon(place.OriginalPrice))
		}
	}
	b.WriteString("\n구성 가능 메뉴:")
	if len(menuItems) == 0 {
		b.WriteString(" 정보 없음")
	}
	for _, item := range menuItems {
		fmt.Fprintf(&b, "\n- %s", item)
	}

	return llm.GenerationRequest{
		SystemPrompt: luckyBagDescriptionSystem,
		UserMessage:  b.String(),
	}
}

// SalesRecommendation builds the prompt for a sales-quantity recommendation.
func SalesRecommendation(stats types.StatsData) llm.GenerationRequest {
	var b strings.Builder
	b.WriteString("[오늘 주문 현황]\n")
	fmt.Fprintf(&b, "결제 완료: %d건\n", stats.PaidCount)
	fmt.Fprintf(&b, "주문 확정: %d건\n", stats.ConfirmedCount)
	fmt.Fprintf(&b, "픽업 완료: %d건\n", stats.PickedUpCount)
	fmt.Fprintf(&b, "취소: %d건\n", stats.CancelledCount)
	fmt.Fprintf(&b, "현재 등록 수량: %d개\n", stats.CurrentQuantity)

	if stats.HistoryDays > 0 {
		fmt.Fprintf(&b, "\n[최근 %d일 누적]\n", stats.HistoryDays)
	} else {
		b.WriteString("\n[누적]\n")
	}
	fmt.Fprintf(&b, "총 주문: %d건\n", stats.TotalOrders)
	fmt.Fprintf(&b, "총 픽업 완료: %d건", stats.TotalPickedUp)
	if stats.TotalOrders > 0 {
		rate := float64(stats.TotalPickedUp) / float64(stats.TotalOrders) * 100
		fmt.Fprintf(&b, "\n픽업 완료율: %.1f%%", rate)
	}

	return llm.GenerationRequest{
		SystemPrompt: salesRecommendationSystem,
		UserMessage:  b.String(),
	}
}

func placeLines(place types.PlaceInfo) string {
	var b strings.Builder
	fmt.Fprintf(&b, "가게 이름: %s\n", place.Name)
	fmt.Fprintf(&b, "상품명: %s\n", place.ItemName)
	fmt.Fprintf(&b, "픽업 시간: %s ~ %s", place.PickupStart, place.PickupEnd)
	if place.Address != "" {
		fmt.Fprintf(&b, "\n픽업 장소: %s", place.Address)
	}
	return b.String()
}

// formatWon renders 12000 as "12,000원".
func formatWon(amount int) string {
	digits := strconv.Itoa(amount)
	neg := strings.HasPrefix(digits, "-")
	digits = strings.TrimPrefix(digits, "-")

	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	for i, r := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	b.WriteString("원")
	return b.String()
}
