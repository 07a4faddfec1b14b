package giveaway

import (
	"fmt"
	"strings"

	"giveaway-bot/internal/config"
)

func welcomeText(prizes []config.Prize) string {
	var sb strings.Builder

	sb.WriteString("✨ <b>Добро пожаловать в розыгрыш призов!</b> ✨\n\n")
	sb.WriteString("🎁 <b>Вот какие подарки можно выиграть:</b>\n\n")

	for _, prize := range prizes {
		sb.WriteString(prize.Label)
		sb.WriteString("\n")
	}

	sb.WriteString("\n🎲 <b>Бросай кубик, чтобы узнать что выпадет именно тебе!</b>")

	return sb.String()
}

func resultText(prize config.Prize) string {
	var sb strings.Builder

	sb.WriteString("🎉 <b>ПОЗДРАВЛЯЕМ!</b> 🎉\n\n")
	sb.WriteString(fmt.Sprintf("%s <b>Вы выиграли:</b>\n<b>%s</b>\n\n", prize.Emoji, prize.Label))

	if prize.PromoCode != "" {
		sb.WriteString(fmt.Sprintf("💬 Для записи назовите промокод: <b>%s</b>\n\n", prize.PromoCode))
		sb.WriteString("📍 Приходите к нам за сертификатом")
	} else {
		sb.WriteString("✨ Ваш приз уже ждёт вас в салоне!\n\n")
		sb.WriteString("📍 Приходите к нам за сертификатом")
	}

	return sb.String()
}

const alreadyPlayedText = "🎁 Вы уже участвовали в розыгрыше!\n\n" +
	"✨ Ваш приз уже ждёт вас в салоне — приходите за сертификатом 📍"

func helpText(diceTriggerLabel string) string {
	var sb strings.Builder

	sb.WriteString("ℹ️ <b>Как участвовать в розыгрыше:</b>\n\n")
	sb.WriteString(fmt.Sprintf("1️⃣ Нажмите кнопку <b>%s</b>\n", diceTriggerLabel))
	sb.WriteString("2️⃣ Узнайте ваш приз\n")
	sb.WriteString("3️⃣ Приходите в салон за сертификатом!\n\n")
	sb.WriteString("Удачи! ✨")

	return sb.String()
}
