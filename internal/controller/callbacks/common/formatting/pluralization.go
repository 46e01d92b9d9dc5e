package formatting

// PluralizeMembers возвращает правильное склонение слова "участник"
func PluralizeMembers(count int) string {
	if count%10 == 1 && count%100 != 11 {
		return "участник"
	}
	if count%10 >= 2 && count%10 <= 4 && (count%100 < 10 || count%100 >= 20) {
		return "участника"
	}
	return "участников"
}

// PluralizeGroups возвращает правильное склонение слова "группа"
func PluralizeGroups(count int) string {
	if count%10 == 1 && count%100 != 11 {
		return "группа"
	}
	if count%10 >= 2 && count%10 <= 4 && (count%100 < 10 || count%100 >= 20) {
		return "группы"
	}
	return "групп"
}

// PluralizeRequests возвращает правильное склонение слова "заявка"
func PluralizeRequests(count int) string {
	if count%10 == 1 && count%100 != 11 {
		return "заявка"
	}
	if count%10 >= 2 && count%10 <= 4 && (count%100 < 10 || count%100 >= 20) {
		return "заявки"
	}
	return "заявок"
}
