// Package docs Taxonomy Microservice API.
//
// Микросервис для управления локациями и таксономией районов.
// Извлекает район из ответов обратного геокодирования, строит ключи локаций
// и предоставляет API для модерации таксономии и массовых исправлений.
//
// Основные возможности:
// - Создание и поиск локаций с автоматическим определением ключа таксономии
// - Очередь ожидающих подтверждения записей таксономии
// - Подтверждение и отклонение записей таксономии
// - Правила исправления сегментов ключей с предпросмотром и транзакционным применением
// - Настройка цепочек административных уровней по странам
//
//	Schemes: http, https
//	BasePath: /api/v1
//	Version: 1.0.0
//
//	Consumes:
//	- application/json
//
//	Produces:
//	- application/json
//
// swagger:meta
package docs
