package gemini

// WasteSolutionsPromptTemplate expects waste type, crop type, waste type,
// quantity kg, location, and crop type again, in that order.
const WasteSolutionsPromptTemplate = `As an agricultural waste management expert, provide innovative solutions for converting %s waste from %s crops into valuable products.

Details:
- Waste Type: %s
- Quantity: %.0f kg
- Location: %s
- Crop: %s

Please provide solutions in the following JSON format:
{
  "solutions": [
    {
      "title": "Solution Name",
      "description": "Brief description of the solution",
      "benefits": ["benefit1", "benefit2", "benefit3"],
      "implementation": "Step-by-step implementation guide",
      "potential_revenue": "Revenue estimate in INR",
      "sustainability_score": 85
    }
  ],
  "environmental_impact": "Description of environmental benefits",
  "recommended_action": "Primary recommendation for this farmer"
}

Focus on practical, cost-effective solutions suitable for Indian agricultural conditions. Output ONLY valid JSON, no markdown, no preamble.`
