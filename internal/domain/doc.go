// Package domain contains the core business entities, value objects, and
// domain rules of the task tracker: tasks, priorities, sort orders and the
// error categories every layer reports through. It is independent of any
// storage or delivery mechanism.
package domain
