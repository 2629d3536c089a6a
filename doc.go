// Package recsys 是商城的个性化与推荐核心。
//
// 设计要点：
// - Ledger-first: 所有个性化信号来自仅追加的行为账本，偏好每次请求重算，透明可解释
// - Pipeline-first: 读路径通过 Node 串联（Recall → Filter → ReRank）
// - 级联兜底: 召回源内置兜底层，信号稀疏时也保证返回满额、去重的结果
// - 无全局状态: 账本/目录一律构造注入，组件无共享可变状态
package recsys

import "github.com/zliveze/Project-Final-sub005/pipeline"

// 轻量 facade：便于用户直接 import 根包使用核心抽象。
type Pipeline = pipeline.Pipeline
type Node = pipeline.Node
type Kind = pipeline.Kind

const (
	KindRecall = pipeline.KindRecall
	KindFilter = pipeline.KindFilter
	KindReRank = pipeline.KindReRank
)
